package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
	"github.com/pvmlabs/examgate-backend/internal/validator"
)

// AdminQuestionHandler handles question bank management.
type AdminQuestionHandler struct {
	questionService *service.QuestionService
}

// NewAdminQuestionHandler creates a new AdminQuestionHandler.
func NewAdminQuestionHandler(questionService *service.QuestionService) *AdminQuestionHandler {
	return &AdminQuestionHandler{questionService: questionService}
}

// List godoc
// GET /api/v1/admin/questions?section=&level=&page=&per_page=
func (h *AdminQuestionHandler) List(c *gin.Context) {
	page, perPage := parsePagination(c)

	var section *model.Section
	if raw := c.Query("section"); raw != "" {
		s := model.Section(raw)
		if !s.Valid() {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		section = &s
	}

	var level *model.Level
	if raw := c.Query("level"); raw != "" {
		l := model.Level(raw)
		if !l.Valid() {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
		level = &l
	}

	questions, total, err := h.questionService.List(c.Request.Context(), section, level, perPage, (page-1)*perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, buildPagination(page, perPage, total))
}

// Get godoc
// GET /api/v1/admin/questions/:id
func (h *AdminQuestionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Create godoc
// POST /api/v1/admin/questions
func (h *AdminQuestionHandler) Create(c *gin.Context) {
	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// Update godoc
// PUT /api/v1/admin/questions/:id
func (h *AdminQuestionHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// Delete godoc
// DELETE /api/v1/admin/questions/:id
func (h *AdminQuestionHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "question deleted successfully"})
}
