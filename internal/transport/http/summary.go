package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/middleware"
	"taskboard/internal/summary"
)

// DownloadSummary renders the task's current fields into a PDF and streams
// it back. Regenerated on every request; nothing is cached.
func (s *Server) DownloadSummary(c echo.Context) error {
	task, errResp := s.loadTask(c)
	if task == nil {
		return errResp
	}
	if !canAccess(middleware.Identity(c), task) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied."})
	}

	doc, err := summary.Render(task)
	if err != nil {
		return internalError(c, "Failed to render summary.", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", summary.Filename(task)))
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
