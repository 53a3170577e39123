package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskpad/taskpad/internal/pkg/response"
	"github.com/taskpad/taskpad/internal/service"
)

type ProfileHandler struct {
	auth *service.AuthService
}

func NewProfileHandler(auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

// CurrentUser returns the identity the auth middleware resolved,
// avatar already encoded.
func (h *ProfileHandler) CurrentUser(c *gin.Context) {
	identity := getIdentity(c)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return
	}
	response.Success(c, identity)
}

// EditProfile applies a partial multipart update. Absent fields keep
// their stored values; in particular an absent password is never
// re-hashed.
func (h *ProfileHandler) EditProfile(c *gin.Context) {
	input := service.ProfileUpdateInput{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	if file, err := c.FormFile("image"); err == nil {
		data, contentType, err := readFormImage(file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid", "failed to read image")
			return
		}
		input.Avatar = data
		input.ContentType = contentType
	}
	identity, err := h.auth.UpdateProfile(c.Request.Context(), getUserID(c), input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, identity)
}
