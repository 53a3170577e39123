package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTodoLifecycle(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("lifecycle")
	signupUser(t, router, email, "secret-pass")
	_, token := loginUser(t, router, email, "secret-pass")

	created := createTodo(t, router, token, "buy milk", 1)
	require.Equal(t, "buy milk", created["text"])
	require.Equal(t, false, created["complete"])
	require.NotEmpty(t, created["id"])
	ownerID := created["user_id"]
	require.NotEmpty(t, ownerID)

	todoID := created["id"].(string)

	// first toggle completes it
	req := authedRequest(http.MethodGet, testBasePath+"/todo/complete/"+todoID, token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, true, dataObject(t, resp)["complete"])

	// second toggle restores the original value
	req = authedRequest(http.MethodGet, testBasePath+"/todo/complete/"+todoID, token, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, false, dataObject(t, resp)["complete"])

	req = authedRequest(http.MethodDelete, testBasePath+"/todo/delete/"+todoID, token, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, todoID, dataObject(t, resp)["id"])
}

// The owner reference always comes from the token, not the request
// body.
func TestCreateIgnoresClientOwner(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("owner")
	signupUser(t, router, email, "secret-pass")
	_, token := loginUser(t, router, email, "secret-pass")

	payload, _ := json.Marshal(map[string]interface{}{
		"text":     "sneaky",
		"priority": 2,
		"user_id":  "someone-else",
	})
	req := authedRequest(http.MethodPost, testBasePath+"/todo/new", token, bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NotEqual(t, "someone-else", dataObject(t, resp)["user_id"])
}

func TestListIsolationBetweenUsers(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	emailA := uniqueEmail("alice")
	emailB := uniqueEmail("bob")
	signupUser(t, router, emailA, "pass-a")
	signupUser(t, router, emailB, "pass-b")
	_, tokenA := loginUser(t, router, emailA, "pass-a")
	_, tokenB := loginUser(t, router, emailB, "pass-b")

	created := createTodo(t, router, tokenA, "alice only", 1)
	aliceTodoID := created["id"].(string)
	aliceUserID := created["user_id"].(string)

	// A sees its todo with the right owner
	req := authedRequest(http.MethodGet, testBasePath+"/todos", tokenA, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	listA := dataArray(t, resp)
	require.Len(t, listA, 1)
	require.Equal(t, aliceUserID, listA[0]["user_id"])

	// B's list must not contain A's todo
	req = authedRequest(http.MethodGet, testBasePath+"/todos", tokenB, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	for _, todo := range dataArray(t, resp) {
		require.NotEqual(t, aliceTodoID, todo["id"])
	}
}

func TestDeleteRequiresOwnership(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	emailA := uniqueEmail("victim")
	emailB := uniqueEmail("intruder")
	signupUser(t, router, emailA, "pass-a")
	signupUser(t, router, emailB, "pass-b")
	_, tokenA := loginUser(t, router, emailA, "pass-a")
	_, tokenB := loginUser(t, router, emailB, "pass-b")

	created := createTodo(t, router, tokenA, "keep me", 3)
	todoID := created["id"].(string)

	req := authedRequest(http.MethodDelete, testBasePath+"/todo/delete/"+todoID, tokenB, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusForbidden, resp.Code)

	// still there for its owner
	req = authedRequest(http.MethodGet, testBasePath+"/todos", tokenA, nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, dataArray(t, resp), 1)
}

func TestToggleRequiresOwnership(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	emailA := uniqueEmail("toggler")
	emailB := uniqueEmail("other")
	signupUser(t, router, emailA, "pass-a")
	signupUser(t, router, emailB, "pass-b")
	_, tokenA := loginUser(t, router, emailA, "pass-a")
	_, tokenB := loginUser(t, router, emailB, "pass-b")

	created := createTodo(t, router, tokenA, "mine", 2)
	todoID := created["id"].(string)

	req := authedRequest(http.MethodGet, testBasePath+"/todo/complete/"+todoID, tokenB, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusForbidden, resp.Code)
}

func TestTodoMutationsRequireAuth(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodDelete, testBasePath+"/todo/delete/some-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	req = httptest.NewRequest(http.MethodGet, testBasePath+"/todo/complete/some-id", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestToggleMissingTodo(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("missing")
	signupUser(t, router, email, "secret-pass")
	_, token := loginUser(t, router, email, "secret-pass")

	req := authedRequest(http.MethodGet, testBasePath+"/todo/complete/"+newTestID(), token, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateValidatesInput(t *testing.T) {
	router, _, cleanup := setupRouter(t)
	defer cleanup()

	email := uniqueEmail("validate")
	signupUser(t, router, email, "secret-pass")
	_, token := loginUser(t, router, email, "secret-pass")

	payload, _ := json.Marshal(map[string]interface{}{"text": "  ", "priority": 1})
	req := authedRequest(http.MethodPost, testBasePath+"/todo/new", token, bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	payload, _ = json.Marshal(map[string]interface{}{"text": "ok", "priority": 9})
	req = authedRequest(http.MethodPost, testBasePath+"/todo/new", token, bytes.NewReader(payload))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}
