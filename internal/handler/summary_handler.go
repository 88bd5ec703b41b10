package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edustack/schoolhub/internal/response"
	"github.com/edustack/schoolhub/internal/service"
)

// SummaryHandler handles the admin summary endpoint.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// GetSummary godoc
// GET /api/admin/summary
// Returns {counts, students, teachers}. Consoles treat a missing counts
// key as "no server aggregate available" and fall back to a local fold;
// this server always provides counts.
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
