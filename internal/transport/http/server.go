package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"taskboard/internal/auth"
	"taskboard/internal/auth/blacklist"
	"taskboard/internal/domain"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

// Server holds the handler dependencies and registers the route surface.
type Server struct {
	Users     *repository.UserRepository
	Tasks     *repository.TaskRepository
	Blacklist blacklist.Blacklist
	SecretKey string
}

func NewServer(users *repository.UserRepository, tasks *repository.TaskRepository, bl blacklist.Blacklist, secretKey string) *Server {
	return &Server{
		Users:     users,
		Tasks:     tasks,
		Blacklist: bl,
		SecretKey: secretKey,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/login", s.Login)
	e.POST("/revalidate", s.Revalidate)

	authed := e.Group("", middleware.Auth(s.SecretKey, s.Blacklist))
	authed.POST("/logout", s.Logout)
	authed.GET("/tasks", s.ListTasks)
	authed.GET("/tasks/:id", s.GetTask)
	authed.PUT("/tasks/:id/status", s.UpdateTaskStatus)
	authed.POST("/tasks/:id/upload", s.UploadFile)
	authed.GET("/download/:id", s.DownloadFile)
	authed.GET("/task/:id/download-summary", s.DownloadSummary)

	admin := authed.Group("", middleware.AdminRequired())
	admin.POST("/register", s.RegisterUser)
	admin.GET("/users", s.ListUsers)
	admin.POST("/users/:id/ban", s.BanUser)
	admin.POST("/tasks", s.CreateTask)
}

// canAccess is the single ownership predicate: admins reach any task, an
// employee only tasks assigned to them. Reads, writes, downloads and
// exports all share it.
func canAccess(claims *auth.Claims, task *domain.Task) bool {
	return claims.Role == domain.RoleAdmin || task.Assignee == claims.Username
}

func internalError(c echo.Context, msg string, err error) error {
	logger.Logger.Error(msg, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": msg})
}
