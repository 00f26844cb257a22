package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
)

// OK writes a success envelope merged with the given payload fields.
func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail writes the failure envelope. class is one of client, server, timeout.
func Fail(c *gin.Context, status int, class pipeline.Class, err error) {
	c.JSON(status, gin.H{
		"success":    false,
		"error":      err.Error(),
		"errorClass": string(class),
	})
}

// FromPipeline maps a pipeline failure through its code table.
func FromPipeline(c *gin.Context, err error) {
	status, class := pipeline.Classify(err)
	Fail(c, status, class, err)
}

// FromAPIError maps a service-layer error; typed apierr statuses pass
// through, anything untyped is an internal server failure.
func FromAPIError(c *gin.Context, err error) {
	var aerr *apierr.Error
	if errors.As(err, &aerr) {
		class := pipeline.ClassServer
		if aerr.Status >= 400 && aerr.Status < 500 {
			class = pipeline.ClassClient
		}
		Fail(c, aerr.Status, class, err)
		return
	}
	Fail(c, http.StatusInternalServerError, pipeline.ClassServer, err)
}
