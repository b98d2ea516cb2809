package entities

import (
	"time"

	"gorm.io/datatypes"
)

// TaskStatusNotStarted is the fixed status of every task at creation time.
const TaskStatusNotStarted = "Not started"

// ExtractedTask is an actionable task pulled out of an ingested message body.
// Many tasks may reference the same message; insertion is idempotent per
// (msg_id, title) and duplicates are silently dropped, not merged.
type ExtractedTask struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageID string         `gorm:"column:msg_id;type:varchar(255);not null;uniqueIndex:ux_tasks_msg_title,priority:1" json:"msg_id"`
	Title     string         `gorm:"type:varchar(255);not null;uniqueIndex:ux_tasks_msg_title,priority:2" json:"title"`
	Project   string         `gorm:"type:varchar(255);not null;default:'General'" json:"project"`
	Assignee  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"assignee"`
	DueDate   string         `gorm:"column:due_date;type:varchar(10)" json:"dueDate"` // YYYY-MM-DD
	Status    string         `gorm:"type:varchar(20);not null;default:'Not started'" json:"status"`
	CreatedAt time.Time      `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for ExtractedTask
func (ExtractedTask) TableName() string {
	return "tasks"
}
