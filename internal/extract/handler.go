package extract

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"insurance-assistant/internal/shared/server/respond"
	"insurance-assistant/internal/shared/telemetry"
)

// MaxUploadBytes caps the accepted document size.
const MaxUploadBytes = 10 << 20

// Handler serves document text extraction.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the extraction route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
}

func (h *Handler) extract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes+1024)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"maxBytes": MaxUploadBytes})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", []gin.H{{"field": "file", "issue": "required"}})
		return
	}
	if fh.Size > MaxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds upload limit", gin.H{"maxBytes": MaxUploadBytes})
		return
	}
	name, err := sanitizeUploadName(fh.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", []gin.H{{"field": "file", "issue": "invalid"}})
		return
	}

	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unreadable upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unreadable upload", nil)
		return
	}

	text, err := ExtractTextFromBytes(c.Request.Context(), data, fh.Header.Get("Content-Type"), name)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF, DOCX and plain text are supported", nil)
			return
		}
		telemetry.Warn("extract.failed", map[string]any{"file": name, "error": err.Error()})
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "could not extract text from document", nil)
		return
	}

	telemetry.Info("extract.complete", map[string]any{"file": name, "bytes": len(data), "chars": len(text)})
	respond.OK(c, gin.H{"fileName": name, "text": text})
}
