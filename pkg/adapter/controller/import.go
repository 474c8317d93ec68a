package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/infrastructure/email"
	"talenthui-go-backend/pkg/infrastructure/storage"
	"talenthui-go-backend/pkg/usecase/usecase/importer"
)

// Import handles the admin CSV upload endpoint.
type Import interface {
	ImportCSV(c echo.Context) error
}

type importController struct {
	importer *importer.Importer
	archive  *storage.S3Service  // nil when archival is disabled
	notify   *email.EmailService // nil when summary emails are disabled
}

// NewImportController creates the CSV import controller. archive and notify
// may be nil.
func NewImportController(im *importer.Importer, archive *storage.S3Service, notify *email.EmailService) Import {
	return &importController{importer: im, archive: archive, notify: notify}
}

type importResponse struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ImportCSV accepts a multipart file upload and runs the shared import
// pipeline over it. Partial batch failures still return 200 with the errors
// listed; only structurally invalid input (400) or a misconfigured store (500)
// fail the request.
func (ctrl *importController) ImportCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "No file provided"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Failed to read uploaded file"})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Failed to read uploaded file"})
	}
	if len(content) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "CSV file is empty or invalid"})
	}

	ctx := c.Request().Context()
	started := time.Now()

	if ctrl.archive != nil {
		key := fmt.Sprintf("imports/%d-%s", time.Now().Unix(), fileHeader.Filename)
		if err := ctrl.archive.UploadCSV(ctx, key, content); err != nil {
			// Archival is best effort; the import itself proceeds.
			c.Logger().Warnf("failed to archive upload: %v", err)
		}
	}

	report, err := ctrl.importer.Run(ctx, bytes.NewReader(content))
	if err != nil {
		if model.IsUndefinedTable(err) {
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "Database not configured",
				Details: err.Error(),
			})
		}
		if errors.Is(err, importer.ErrStoreUnavailable) {
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Error:   "Database unavailable",
				Details: err.Error(),
			})
		}
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   "CSV file is empty or invalid",
			Details: err.Error(),
		})
	}

	if report.TotalEligible == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "No valid candidates found in CSV",
		})
	}

	if ctrl.notify != nil {
		duration := int(time.Since(started).Seconds())
		if err := ctrl.notify.SendImportSummary(fileHeader.Filename, duration, report); err != nil {
			c.Logger().Warnf("failed to send import summary: %v", err)
		}
	}

	return c.JSON(http.StatusOK, importResponse{
		Success:  true,
		Imported: report.Imported,
		Total:    report.TotalEligible,
		Errors:   report.Errors,
	})
}
