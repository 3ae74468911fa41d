package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/granjaops/granja/internal/service/export"
)

// ExportHandler serves CSV downloads of the record collections.
type ExportHandler struct {
	svc    *export.Service
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc *export.Service, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Download builds the export for the path kind and serves it as an
// attachment. An empty collection refuses the export with a notification
// instead of producing a file.
func (h *ExportHandler) Download(c *gin.Context) {
	kind := export.Kind(c.Param("kind"))

	file, err := h.svc.Export(c.Request.Context(), kind)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrUnknownKind):
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be financial or production"})
		case errors.Is(err, export.ErrNoData):
			c.JSON(http.StatusConflict, gin.H{"error": "Não há dados para exportar."})
		default:
			h.logger.Error("export failed", zap.String("kind", string(kind)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}
