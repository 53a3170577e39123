package handler_test

import (
	"bytes"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/taskpad/taskpad/internal/avatar"
	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/handler"
	"github.com/taskpad/taskpad/internal/repo"
	"github.com/taskpad/taskpad/internal/service"
	"github.com/taskpad/taskpad/internal/testutil"
)

const testBasePath = "/api"

var testAvatar = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func newTestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setupRouter(t *testing.T) (http.Handler, *sql.DB, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, cleanup := testutil.OpenTestDB(t)

	userRepo := repo.NewUserRepo(conn)
	todoRepo := repo.NewTodoRepo(conn)
	revokedRepo := repo.NewRevokedTokenRepo(conn)

	store, err := avatar.New(config.AvatarStoreConfig{Type: "db"}, conn)
	require.NoError(t, err)

	authService := service.NewAuthService(userRepo, revokedRepo, store, []byte("test-secret"), time.Hour, 0, 0)
	todoService := service.NewTodoService(todoRepo)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:     handler.NewAuthHandler(authService),
		Profile:  handler.NewProfileHandler(authService),
		Todos:    handler.NewTodoHandler(todoService),
		Resolver: authService,
		BasePath: testBasePath,
	})
	return router, conn, cleanup
}

func multipartBody(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

// signupUser registers a fresh user and returns its token.
func signupUser(t *testing.T, router http.Handler, email, pass string) string {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"name":     "tester",
		"email":    email,
		"password": pass,
	}, "avatar.png", testAvatar)
	req := httptest.NewRequest(http.MethodPost, "/signup", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	token := resp.Header().Get("Authorization")
	require.NotEmpty(t, token)
	return token
}

func loginUser(t *testing.T, router http.Handler, email, pass string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"email": email, "password": pass})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		return resp, ""
	}
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return resp, envelope.Data.Token
}

func authedRequest(method, path, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func createTodo(t *testing.T, router http.Handler, token, text string, priority int) map[string]interface{} {
	t.Helper()
	payload, _ := json.Marshal(map[string]interface{}{"text": text, "priority": priority})
	req := authedRequest(http.MethodPost, testBasePath+"/todo/new", token, bytes.NewReader(payload))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	return dataObject(t, resp)
}

func dataObject(t *testing.T, resp *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func dataArray(t *testing.T, resp *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, newTestID())
}
