package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvmlabs/examgate-backend/internal/response"
	"github.com/pvmlabs/examgate-backend/internal/service"
)

// WindowHandler serves the public exam schedule.
type WindowHandler struct {
	windowService *service.WindowService
}

// NewWindowHandler creates a new WindowHandler.
func NewWindowHandler(windowService *service.WindowService) *WindowHandler {
	return &WindowHandler{windowService: windowService}
}

// GetWindow godoc
// GET /api/v1/public/window
// Returns the schedule with registration/test open flags so the portal can
// show countdowns without hardcoding dates.
func (h *WindowHandler) GetWindow(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"window": h.windowService.Status()})
}
