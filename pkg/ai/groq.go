package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/email-scheduler/pkg/config"
)

// GroqClient is a minimal client for Groq API calls used for LLM extraction
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}

	model := "llama-3.1-70b-versatile"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string      `json:"model,omitempty"`
	Messages    interface{} `json:"messages,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *GroqClient) chat(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	reqBody := ChatRequest{
		Model: g.model,
		Messages: []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return cr.Choices[0].Message.Content, nil
}

// ExtractIntent asks the model to turn free text into a scheduling intent
// JSON object. The sender address anchors pronouns like "me". Returns the raw
// assistant content; validation happens in the caller's parser.
func (g *GroqClient) ExtractIntent(ctx context.Context, text, sender string) (string, error) {
	now := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")
	prompt := fmt.Sprintf(
		"Today's date and time is %s. "+
			"Extract the intent, entities, and attendees from the following text in JSON format. "+
			"Interpret 'me' as the sender's email. Also, include a boolean field 'is_sender_required' "+
			"to indicate if the sender explicitly wants to be added to the attendees list.\n\n"+
			"Sender Email: %s\n"+
			"Text: %s\n\n"+
			"If the intent is 'reschedule', include 'old_date' and 'old_time' fields for the current meeting details.\n\n"+
			"Example Output:\n"+
			"{\n"+
			"  \"intent\": \"reschedule\", \n"+
			"  \"title\": \"Meeting\", \n"+
			"  \"old_date\": \"2024-12-05\", \n"+
			"  \"old_time\": \"15:00\", \n"+
			"  \"new_date\": \"2024-12-06\", \n"+
			"  \"new_time\": \"16:00\", \n"+
			"  \"attendees\": [\"sender@example.com\", \"ravi@example.com\"],\n"+
			"  \"is_sender_required\": true\n"+
			"}",
		now, sender, text,
	)
	system := "You are an assistant that extracts intents and entities from text, ensuring attendee information is accurate."
	return g.chat(ctx, system, prompt, 0.5, 150)
}

// ExtractTasks asks the model for a strict JSON array of actionable tasks
// found in the message body.
func (g *GroqClient) ExtractTasks(ctx context.Context, body string) (string, error) {
	prompt := fmt.Sprintf(
		"Extract actionable tasks from the email content below.\n"+
			"Return ONLY a valid JSON array containing tasks in this EXACT format:\n"+
			"[\n"+
			"    {\n"+
			"        \"title\": \"task title\",\n"+
			"        \"project\": \"project name\",\n"+
			"        \"assignee\": [\"person name\"],\n"+
			"        \"dueDate\": \"YYYY-MM-DD\",\n"+
			"        \"status\": \"Not started\"\n"+
			"    }\n"+
			"]\n\n"+
			"Rules:\n"+
			"- If no tasks found, return empty array []\n"+
			"- All dates must be in YYYY-MM-DD format\n"+
			"- Status must be \"Not started\"\n"+
			"- Use \"General\" for project if not specified\n"+
			"- Each task must have all required fields\n"+
			"- Return ONLY the JSON array, no other text\n\n"+
			"Email Content:\n%s",
		body,
	)
	system := "You are a task extraction AI that ONLY returns valid JSON arrays."
	return g.chat(ctx, system, prompt, 0.3, 1000)
}
