package domain

import "time"

const (
	StatusNotStarted = "not yet started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the three task statuses.
// Any status may follow any other; there is no enforced ordering.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a unit of work assigned to exactly one employee. The assignee
// column references users.username so the database rejects dangling
// references even though the API is username-oriented.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"column:task_title;size:255;not null" json:"taskTitle"`
	Description string    `gorm:"type:text" json:"description"`
	Assignee    string    `gorm:"size:255;not null;index" json:"assignee"`
	AssigneeRef *User     `gorm:"foreignKey:Assignee;references:Username" json:"-"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Status      string    `gorm:"size:50;not null;default:'not yet started'" json:"status"`
	FilePath    string    `gorm:"size:512" json:"filePath"`
	FileData    []byte    `json:"-"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// HasAttachment reports whether a file has been uploaded for the task.
func (t *Task) HasAttachment() bool {
	return t.FilePath != "" && len(t.FileData) > 0
}
