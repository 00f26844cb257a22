package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/http/response"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
)

type VideoHandler struct {
	orch *pipeline.Orchestrator
}

func NewVideoHandler(orch *pipeline.Orchestrator) *VideoHandler {
	return &VideoHandler{orch: orch}
}

// ProcessVideo runs the full extract-upload-transcribe-generate pipeline
// for one YouTube reference and returns the audio URL, transcript and
// generated questions.
func (vh *VideoHandler) ProcessVideo(c *gin.Context) {
	var req struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}

	result, err := vh.orch.ProcessVideo(c.Request.Context(), req.VideoURL)
	if err != nil {
		response.FromPipeline(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"audioUrl":   result.AudioURL,
		"transcript": result.Transcript,
		"questions":  result.Questions,
	})
}
