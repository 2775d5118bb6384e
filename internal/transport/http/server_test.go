package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	"taskboard/internal/auth/blacklist"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/pkg/logger"
)

const testSecret = "test-secret"

func newTestEnv(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	logger.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// in-memory sqlite: one connection means one database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	srv := NewServer(repository.NewUserRepository(db), repository.NewTaskRepository(db), blacklist.NewMemory(), testSecret)
	e := echo.New()
	srv.Register(e)
	return e, db
}

func createUser(t *testing.T, db *gorm.DB, username, password, role string) *domain.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{Username: username, Password: hashed, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user, testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func createTask(t *testing.T, db *gorm.DB, title, assignee string) *domain.Task {
	t.Helper()
	task := &domain.Task{
		Title:       title,
		Description: "test description",
		Assignee:    assignee,
		Deadline:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusNotStarted,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}
	return task
}

func doJSON(t *testing.T, e *echo.Echo, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
