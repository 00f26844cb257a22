package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/http/middleware"
	"github.com/iamvtyagi/flashLearn/internal/http/response"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
	"github.com/iamvtyagi/flashLearn/internal/services"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type QuizHandler struct {
	orch        *pipeline.Orchestrator
	userService services.UserService
	quizService services.QuizService
}

func NewQuizHandler(orch *pipeline.Orchestrator, userService services.UserService, quizService services.QuizService) *QuizHandler {
	return &QuizHandler{
		orch:        orch,
		userService: userService,
		quizService: quizService,
	}
}

// FromTranscript generates a question set directly from client-supplied text.
func (qh *QuizHandler) FromTranscript(c *gin.Context) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}
	if req.Transcript == "" {
		response.FromAPIError(c, apierr.BadRequest("missing_transcript", fmt.Errorf("transcript is required")))
		return
	}

	result, err := qh.orch.ProcessText(c.Request.Context(), req.Transcript)
	if err != nil {
		response.FromPipeline(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"questions": result.Questions})
}

// UpdateStats adds a completed quiz to the user's running totals.
func (qh *QuizHandler) UpdateStats(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Score int    `json:"score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}

	user, err := qh.userService.UpdateQuizStats(c.Request.Context(), req.Email, req.Score)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{
		"quizzes": gin.H{
			"totalQuizzes": user.TotalQuizzes,
			"totalScore":   user.TotalScore,
		},
	})
}

// SaveAttempt persists one completed quiz for the authenticated user.
func (qh *QuizHandler) SaveAttempt(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromAPIError(c, apierr.Unauthorized("missing_user", fmt.Errorf("not authenticated")))
		return
	}

	var req struct {
		Score          int              `json:"score"`
		TotalQuestions int              `json:"totalQuestions"`
		CorrectAnswers int              `json:"correctAnswers"`
		Questions      []types.Question `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromAPIError(c, apierr.BadRequest("invalid_body", fmt.Errorf("invalid request body")))
		return
	}

	attempt, err := qh.quizService.SaveAttempt(c.Request.Context(), user.ID.String(), req.Score, req.TotalQuestions, req.CorrectAnswers, req.Questions)
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// Attempts lists the authenticated user's saved quiz attempts.
func (qh *QuizHandler) Attempts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromAPIError(c, apierr.Unauthorized("missing_user", fmt.Errorf("not authenticated")))
		return
	}
	attempts, err := qh.quizService.AttemptsForUser(c.Request.Context(), user.ID.String())
	if err != nil {
		response.FromAPIError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"attempts": attempts})
}
