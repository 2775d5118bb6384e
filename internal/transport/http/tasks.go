package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard/internal/domain"
	"taskboard/internal/middleware"
)

type createTaskRequest struct {
	TaskTitle   string `json:"taskTitle"`
	Description string `json:"description"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateTask persists a new task with the default status. Admin only. The
// assignee must be an existing employee so the row never dangles.
func (s *Server) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	if req.TaskTitle == "" || req.Assignee == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title and assignee are required."})
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Deadline must be a YYYY-MM-DD date."})
	}

	ctx := c.Request().Context()
	assignee, err := s.Users.FindByUsername(ctx, req.Assignee)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return internalError(c, "Failed to check assignee.", err)
	}
	if assignee == nil || assignee.Role != domain.RoleEmployee {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Assignee must be an existing employee."})
	}

	task := &domain.Task{
		Title:       req.TaskTitle,
		Description: req.Description,
		Assignee:    req.Assignee,
		Deadline:    deadline,
		Status:      domain.StatusNotStarted,
	}
	if err := s.Tasks.Create(ctx, task); err != nil {
		return internalError(c, "Failed to create task.", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Task created successfully!"})
}

// ListTasks is the role-dependent query: admins get every task, employees
// only the tasks assigned to them.
func (s *Server) ListTasks(c echo.Context) error {
	claims := middleware.Identity(c)
	ctx := c.Request().Context()

	var (
		tasks []*domain.Task
		err   error
	)
	if claims.Role == domain.RoleAdmin {
		tasks, err = s.Tasks.ListAll(ctx)
	} else {
		tasks, err = s.Tasks.ListByAssignee(ctx, claims.Username)
	}
	if err != nil {
		return internalError(c, "Failed to fetch tasks.", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTask returns one task, gated by the ownership predicate.
func (s *Server) GetTask(c echo.Context) error {
	task, errResp := s.loadTask(c)
	if task == nil {
		return errResp
	}
	if !canAccess(middleware.Identity(c), task) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied to this task."})
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus sets the status field. The same admin-or-assignee rule
// as the read path applies.
func (s *Server) UpdateTaskStatus(c echo.Context) error {
	task, errResp := s.loadTask(c)
	if task == nil {
		return errResp
	}
	if !canAccess(middleware.Identity(c), task) {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied to this task."})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	if !domain.ValidStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid status value."})
	}

	if err := s.Tasks.UpdateStatus(c.Request().Context(), task.ID, req.Status); err != nil {
		return internalError(c, "Failed to update task status.", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Task status updated successfully."})
}

// loadTask parses the :id param and fetches the row; on failure it writes
// the response and returns a nil task.
func (s *Server) loadTask(c echo.Context) (*domain.Task, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid ID"})
	}

	task, err := s.Tasks.FindByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"message": "Task not found"})
		}
		return nil, internalError(c, "Failed to fetch task.", err)
	}
	return task, nil
}
