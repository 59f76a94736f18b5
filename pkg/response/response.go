package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/fixtrack/repair-shop-api/pkg/errors"
)

// JSON sends a success response with the payload as the body. The API
// serves flat shapes (bare arrays, plain objects) rather than an envelope,
// matching what the front end consumes.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}

// Error sends an error response as {"error": message} with the status
// carried by the typed error. Wrapped driver errors stay server-side; only
// the message reaches the client.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
