package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/faizan/roster/apperr"
	"github.com/faizan/roster/bulk"
)

// BulkHandler serves artist CSV export and import.
type BulkHandler struct {
	exporter       *bulk.Exporter
	importer       *bulk.Importer
	maxUploadBytes int64
	log            *zap.Logger
}

func NewBulkHandler(exporter *bulk.Exporter, importer *bulk.Importer, maxUploadBytes int64, log *zap.Logger) *BulkHandler {
	return &BulkHandler{
		exporter:       exporter,
		importer:       importer,
		maxUploadBytes: maxUploadBytes,
		log:            log.Named("bulk"),
	}
}

// ExportAll godoc
// @Summary Download every artist as CSV
// @Tags artists
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Router /artists/export/all [get]
func (h *BulkHandler) ExportAll(c *gin.Context) {
	setCSVHeaders(c, "artists.csv")
	h.finishExport(c, h.exporter.ExportAll(c.Request.Context(), c.Writer))
}

// ExportOne godoc
// @Summary Download one artist as CSV
// @Tags artists
// @Produce text/csv
// @Param id path int true "Artist id"
// @Failure 404 {object} middleware.ErrorBody
// @Router /artists/download/{id} [get]
func (h *BulkHandler) ExportOne(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	setCSVHeaders(c, fmt.Sprintf("artist-%d.csv", id))
	h.finishExport(c, h.exporter.ExportOne(c.Request.Context(), id, c.Writer))
}

// finishExport reports err as a normal error response when nothing has been
// streamed yet. Once rows are on the wire the status is already sent, so
// the failure is only logged.
func (h *BulkHandler) finishExport(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if c.Writer.Written() {
		h.log.Error("export interrupted", zap.Error(err))
		c.Abort()
		return
	}
	c.Writer.Header().Del("Content-Type")
	c.Writer.Header().Del("Content-Disposition")
	fail(c, err)
}

// Import godoc
// @Summary Create artists from an uploaded CSV file
// @Description Rows are created independently; the response reports each row.
// @Tags artists
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} Response
// @Failure 400 {object} middleware.ErrorBody
// @Router /artists/upload [post]
func (h *BulkHandler) Import(c *gin.Context) {
	// The multipart envelope adds a little on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+64<<10)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &tooBig):
			fail(c, h.tooLarge())
		case errors.Is(err, http.ErrMissingFile):
			fail(c, apperr.BadRequest("CSV file is required"))
		default:
			fail(c, apperr.BadRequest("Invalid multipart upload").Wrap(err))
		}
		return
	}
	if fh.Size > h.maxUploadBytes {
		fail(c, h.tooLarge())
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, apperr.Internal(err))
		return
	}
	defer f.Close()

	report, err := h.importer.Import(c.Request.Context(), f)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, fmt.Sprintf("Processed %d rows: %d created, %d failed",
		report.Totals.Total, report.Totals.Created, report.Totals.Failed), report)
}

func (h *BulkHandler) tooLarge() *apperr.Error {
	return apperr.BadRequest(fmt.Sprintf("File exceeds the upload limit of %d bytes", h.maxUploadBytes))
}

func setCSVHeaders(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
