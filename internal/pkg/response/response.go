package response

import "github.com/gin-gonic/gin"

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{"message": "ok", "data": data})
}

func SuccessMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(200, gin.H{"message": message, "data": data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorBody{Code: code, Message: message})
}
