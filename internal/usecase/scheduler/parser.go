package scheduler

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/johnquangdev/email-scheduler/internal/domain/entities"
)

// ParseIntent decodes the LLM's intent payload. Markdown code fences are
// stripped first. Only structural failures are errors; an unrecognized
// intent kind is returned as-is for the caller to skip.
func ParseIntent(content string) (*entities.Intent, error) {
	content = extractJSON(content)

	var intent entities.Intent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return nil, fmt.Errorf("failed to parse intent JSON: %w", err)
	}

	intent.Kind = entities.IntentKind(strings.ToLower(strings.TrimSpace(string(intent.Kind))))
	if intent.Title == "" {
		intent.Title = "Meeting"
	}
	return &intent, nil
}

type taskPayload struct {
	Title    string   `json:"title"`
	Project  string   `json:"project"`
	Assignee []string `json:"assignee"`
	DueDate  string   `json:"dueDate"`
	Status   string   `json:"status"`
}

// ParseTasks decodes the LLM's task array for one message. Entries without a
// title are dropped; project defaults to "General" and status is always
// forced to "Not started" regardless of what the model returned.
func ParseTasks(messageID, content string) ([]*entities.ExtractedTask, error) {
	content = extractJSON(content)

	var payload []taskPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse tasks JSON: %w", err)
	}

	tasks := make([]*entities.ExtractedTask, 0, len(payload))
	for _, p := range payload {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		project := strings.TrimSpace(p.Project)
		if project == "" {
			project = "General"
		}
		assignee := p.Assignee
		if assignee == nil {
			assignee = []string{}
		}
		assigneeJSON, err := json.Marshal(assignee)
		if err != nil {
			continue
		}
		tasks = append(tasks, &entities.ExtractedTask{
			MessageID: messageID,
			Title:     title,
			Project:   project,
			Assignee:  datatypes.JSON(assigneeJSON),
			DueDate:   strings.TrimSpace(p.DueDate),
			Status:    entities.TaskStatusNotStarted,
		})
	}
	return tasks, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
