package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/http/response"
	"github.com/iamvtyagi/flashLearn/internal/pdftext"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
)

const maxPDFBytes = 20 << 20

type PDFHandler struct {
	orch *pipeline.Orchestrator
}

func NewPDFHandler(orch *pipeline.Orchestrator) *PDFHandler {
	return &PDFHandler{orch: orch}
}

// FromPDF extracts the text of an uploaded PDF and generates a question set.
func (ph *PDFHandler) FromPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		response.FromAPIError(c, apierr.BadRequest("missing_file", fmt.Errorf("pdf file is required")))
		return
	}
	if fileHeader.Size > maxPDFBytes {
		response.FromAPIError(c, apierr.BadRequest("file_too_large", fmt.Errorf("pdf exceeds %d bytes", maxPDFBytes)))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.FromAPIError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPDFBytes+1))
	if err != nil {
		response.FromAPIError(c, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if !pdftext.IsPDF(data) {
		response.FromAPIError(c, apierr.BadRequest("invalid_file", fmt.Errorf("file is not a PDF")))
		return
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		response.FromAPIError(c, apierr.BadRequest("unreadable_pdf", err))
		return
	}

	result, err := ph.orch.ProcessText(c.Request.Context(), text)
	if err != nil {
		response.FromPipeline(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"questions": result.Questions})
}
