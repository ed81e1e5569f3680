package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/model"
	"github.com/pvmlabs/examgate-backend/internal/repository"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
	"github.com/pvmlabs/examgate-backend/internal/validator"
)

// RegistrationHandler handles candidate sign-up.
type RegistrationHandler struct {
	registrationService *service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register godoc
// POST /api/v1/public/register
// Creates a candidate inside the registration window and returns their
// candidate code.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req model.RegisterCandidateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	candidate, err := h.registrationService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationClosed):
			response.Fail(c, http.StatusForbidden, response.ErrRegistrationClosed)
		case errors.Is(err, repository.ErrDuplicateEmail):
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"candidate": candidate})
}
