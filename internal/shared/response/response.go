package response

import (
	"github.com/gin-gonic/gin"
)

// The JSON API keeps the wire contract of the original service:
// successful mutations answer {"message": ...}, failures answer {"detail": ...}.

type MessageBody struct {
	Message string `json:"message"`
}

type DetailBody struct {
	Detail string `json:"detail"`
}

// Message writes a success envelope.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageBody{Message: message})
}

// Detail writes an error envelope.
func Detail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, DetailBody{Detail: detail})
}

func BadRequest(c *gin.Context, detail string) {
	Detail(c, 400, detail)
}

func NotFound(c *gin.Context, detail string) {
	Detail(c, 404, detail)
}

// InternalServerError hides the underlying cause from clients; the caller is
// expected to log it server-side.
func InternalServerError(c *gin.Context) {
	Detail(c, 500, "Внутренняя ошибка сервера")
}
