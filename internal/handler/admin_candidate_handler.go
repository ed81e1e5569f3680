package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
)

// AdminCandidateHandler handles candidate oversight: results listing,
// attempt review, and session resets.
type AdminCandidateHandler struct {
	candidateRepo  *repository.CandidateRepository
	attemptService *service.AttemptService
	authService    *service.AuthService
}

// NewAdminCandidateHandler creates a new AdminCandidateHandler.
func NewAdminCandidateHandler(
	candidateRepo *repository.CandidateRepository,
	attemptService *service.AttemptService,
	authService *service.AuthService,
) *AdminCandidateHandler {
	return &AdminCandidateHandler{
		candidateRepo:  candidateRepo,
		attemptService: attemptService,
		authService:    authService,
	}
}

// List godoc
// GET /api/v1/admin/candidates?page=&per_page=
// Returns candidates with their scores, best scores first.
func (h *AdminCandidateHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	candidates, total, err := h.candidateRepo.ListWithScores(c.Request.Context(), perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if candidates == nil {
		candidates = []repository.CandidateResult{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"candidates": candidates}, buildPagination(page, perPage, total))
}

// GetAttempt godoc
// GET /api/v1/admin/candidates/:id/attempt
// Returns the candidate's submitted attempt with per-question answers.
func (h *AdminCandidateHandler) GetAttempt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	detail, err := h.attemptService.DetailByCandidate(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoSubmittedAttempt) {
			response.Fail(c, http.StatusNotFound, response.ErrNoResult)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// ResetSession godoc
// POST /api/v1/admin/candidates/:id/reset-session
// Clears the candidate's login session so they can log in again, e.g.
// after a browser crash on exam day.
func (h *AdminCandidateHandler) ResetSession(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.candidateRepo.GetByID(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if err := h.authService.ResetCandidateSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session reset successfully"})
}
