package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payadvice/internal/domain"
	"payadvice/internal/port"
	"payadvice/internal/service"
)

// ParseHandler exposes the parsing core over HTTP.
type ParseHandler struct {
	adviceService *service.AdviceService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(adviceService *service.AdviceService) *ParseHandler {
	return &ParseHandler{adviceService: adviceService}
}

// ParseRequest is the body for POST /api/v1/parse.
type ParseRequest struct {
	FileKind     string `json:"file_kind" binding:"required"`
	RawPayload   string `json:"raw_payload" binding:"required"`
	CustomerHint string `json:"customer_hint"`
}

// Parse handles POST /api/v1/parse.
func (h *ParseHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file_kind and raw_payload are required")
		return
	}

	kind, ok := domain.KnownFileKinds[req.FileKind]
	if !ok {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_KIND", "unsupported file kind; allowed: pdf, xml")
		return
	}

	advice, err := h.adviceService.Parse(c.Request.Context(), port.ParseInput{
		FileKind:     kind,
		RawPayload:   req.RawPayload,
		CustomerHint: req.CustomerHint,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, advice)
}

// Customers handles GET /api/v1/customers.
func (h *ParseHandler) Customers(c *gin.Context) {
	RespondOK(c, gin.H{"customers": h.adviceService.Customers()})
}
