package http

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"taskboard/internal/domain"
)

func TestDownloadSummary(t *testing.T) {
	e, db := newTestEnv(t)
	alice := createUser(t, db, "alice", "pw", domain.RoleEmployee)
	task := createTask(t, db, "Write report", "alice")

	rec := doJSON(t, e, http.MethodGet, "/task/"+itoa(task.ID)+"/download-summary", tokenFor(t, alice), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/pdf") {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body does not start with a PDF header")
	}

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	want := `Task-Summary-` + itoa(task.ID) + `-Write_report.pdf`
	if !strings.Contains(disposition, want) {
		t.Errorf("Content-Disposition = %q, want it to carry %q", disposition, want)
	}
}

func TestDownloadSummaryOwnership(t *testing.T) {
	e, db := newTestEnv(t)
	createUser(t, db, "alice", "pw", domain.RoleEmployee)
	bob := createUser(t, db, "bob", "pw", domain.RoleEmployee)
	admin := createUser(t, db, "root", "pw", domain.RoleAdmin)
	task := createTask(t, db, "Write report", "alice")
	target := "/task/" + itoa(task.ID) + "/download-summary"

	if rec := doJSON(t, e, http.MethodGet, target, tokenFor(t, bob), nil); rec.Code != http.StatusForbidden {
		t.Errorf("non-assignee export: status = %d, want 403", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodGet, target, tokenFor(t, admin), nil); rec.Code != http.StatusOK {
		t.Errorf("admin export: status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodGet, "/task/9999/download-summary", tokenFor(t, admin), nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown task export: status = %d, want 404", rec.Code)
	}
}
