package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/comps-mao-pipeline/internal/errors"
	"github.com/ajharbinger/comps-mao-pipeline/internal/services"
)

// CompsHandler handles comp packet requests
type CompsHandler struct {
	compService services.CompPacketService
}

// NewCompsHandler creates a new comps handler with service injection
func NewCompsHandler(compService services.CompPacketService) *CompsHandler {
	return &CompsHandler{
		compService: compService,
	}
}

// RunComps runs the valuation flow for an address and returns the packet,
// summary, and PDF location
func (h *CompsHandler) RunComps(c *gin.Context) {
	var req services.RunCompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.compService.RunComps(c.Request.Context(), req)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, gin.H{
			"error": err.Error(),
			"code":  errors.CodeOf(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"packet":    resp.Packet,
		"pdf_path":  resp.PDFPath,
		"summary":   resp.Summary,
		"timestamp": time.Now(),
	})
}

// Health reports liveness and the configured comp source
func (h *CompsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"comp_source": h.compService.SourceKind(),
		"timestamp":   time.Now(),
	})
}

func statusForError(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeParseError:
		return http.StatusBadRequest
	case errors.ErrCodeInsufficientData:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
