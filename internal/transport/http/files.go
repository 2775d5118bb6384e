package http

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/middleware"
)

// UploadFile attaches the multipart "file" field to a task. Bytes are
// buffered fully in memory; a later upload overwrites an earlier one.
func (s *Server) UploadFile(c echo.Context) error {
	task, errResp := s.loadTask(c)
	if task == nil {
		return errResp
	}
	if !canAccess(middleware.Identity(c), task) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied to this task."})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "A file is required."})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to read uploaded file.", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return internalError(c, "Failed to read uploaded file.", err)
	}

	path := fmt.Sprintf("uploads/%d_%s", time.Now().UnixMilli(), fileHeader.Filename)
	if err := s.Tasks.AttachFile(c.Request().Context(), task.ID, path, data); err != nil {
		return internalError(c, "Failed to store uploaded file.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "File uploaded successfully."})
}

// DownloadFile streams back the stored attachment with a filename derived
// from the stored path.
func (s *Server) DownloadFile(c echo.Context) error {
	task, errResp := s.loadTask(c)
	if task == nil {
		return errResp
	}
	if !canAccess(middleware.Identity(c), task) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied to this task."})
	}
	if !task.HasAttachment() {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "File not found"})
	}

	fileName := filepath.Base(task.FilePath)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, task.FileData)
}
