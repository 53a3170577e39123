package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskpad/taskpad/internal/pkg/response"
	"github.com/taskpad/taskpad/internal/service"
)

type TodoHandler struct {
	todos *service.TodoService
}

func NewTodoHandler(todos *service.TodoService) *TodoHandler {
	return &TodoHandler{todos: todos}
}

type todoCreateRequest struct {
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req todoCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	todo, err := h.todos.Create(c.Request.Context(), getUserID(c), service.TodoCreateInput{
		Text:     req.Text,
		Priority: req.Priority,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todo)
}

func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todos)
}

func (h *TodoHandler) Delete(c *gin.Context) {
	todo, err := h.todos.Delete(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todo)
}

func (h *TodoHandler) ToggleComplete(c *gin.Context) {
	todo, err := h.todos.ToggleComplete(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, todo)
}
