package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/middleware"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
	"github.com/pvmlabs/examgate-backend/internal/validator"
)

// ExamHandler handles the candidate exam-taking flow: start, paper,
// submit, result. Start, paper and submit are gated on the test window.
type ExamHandler struct {
	attemptService  *service.AttemptService
	questionService *service.QuestionService
	windowService   *service.WindowService
	candidateRepo   *repository.CandidateRepository
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(
	attemptService *service.AttemptService,
	questionService *service.QuestionService,
	windowService *service.WindowService,
	candidateRepo *repository.CandidateRepository,
) *ExamHandler {
	return &ExamHandler{
		attemptService:  attemptService,
		questionService: questionService,
		windowService:   windowService,
		candidateRepo:   candidateRepo,
	}
}

// Start godoc
// POST /api/v1/candidate/exam/start
// Creates the candidate's single attempt. A second call, concurrent or
// not, gets ALREADY_ATTEMPTED.
func (h *ExamHandler) Start(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if !h.windowService.TestWindowOpen() {
		response.Fail(c, http.StatusForbidden, response.ErrTestWindowClosed)
		return
	}

	attempt, err := h.attemptService.Start(c.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyAttempted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyAttempted)
		case errors.Is(err, service.ErrCandidateNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": attempt})
}

// GetPaper godoc
// GET /api/v1/candidate/exam/paper
// Returns the paper for the candidate's level, correct answers stripped.
// Requires an in-progress attempt, so the paper is only visible after Start.
func (h *ExamHandler) GetPaper(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if !h.windowService.TestWindowOpen() {
		response.Fail(c, http.StatusForbidden, response.ErrTestWindowClosed)
		return
	}

	candidate, err := h.candidateRepo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if _, err := h.attemptService.InProgress(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusConflict, response.ErrNoActiveAttempt)
		return
	}

	paper, err := h.questionService.GetPaper(c.Request.Context(), candidate.Level)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// Submit godoc
// POST /api/v1/candidate/exam/submit
// Grades the answers and finalizes the attempt. A retry after success
// gets NO_ACTIVE_ATTEMPT, never a second scoring.
func (h *ExamHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if !h.windowService.TestWindowOpen() {
		response.Fail(c, http.StatusForbidden, response.ErrTestWindowClosed)
		return
	}

	var req model.SubmitAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	attempt, err := h.attemptService.Submit(c.Request.Context(), claims.UserID, req.Answers)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveAttempt) {
			response.Fail(c, http.StatusConflict, response.ErrNoActiveAttempt)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}

// GetResult godoc
// GET /api/v1/candidate/exam/result
// Returns the candidate's submitted attempt. Available after the window
// closes, so candidates can review their score later.
func (h *ExamHandler) GetResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	attempt, err := h.attemptService.Result(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNoSubmittedAttempt) {
			response.Fail(c, http.StatusNotFound, response.ErrNoResult)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"attempt": attempt})
}
