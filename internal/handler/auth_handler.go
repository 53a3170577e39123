package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpad/taskpad/internal/middleware"
	"github.com/taskpad/taskpad/internal/pkg/response"
	"github.com/taskpad/taskpad/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup registers a user from a multipart form carrying name, email,
// password and an avatar image. The issued token travels back in the
// Authorization response header.
func (h *AuthHandler) Signup(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	pass := c.PostForm("password")
	if name == "" || email == "" || pass == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "name, email and password are required")
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "image is required")
		return
	}
	data, contentType, err := readFormImage(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "failed to read image")
		return
	}
	_, token, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Name:        name,
		Email:       email,
		Password:    pass,
		Avatar:      data,
		ContentType: contentType,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.Header("Authorization", token)
	response.SuccessMessage(c, "User registered successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "invalid", "email and password are required")
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.SuccessMessage(c, "Login successful", gin.H{"token": token})
}

// Logout revokes the presented token. Other tokens for the same user
// stay valid.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromHeader(c)
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", "missing authorization")
		return
	}
	if err := h.auth.Revoke(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}
	response.SuccessMessage(c, "Logged out", nil)
}
