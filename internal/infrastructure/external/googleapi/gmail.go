package googleapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const gmailBaseURL = "https://gmail.googleapis.com/gmail/v1"

var fromAddrPattern = regexp.MustCompile(`<(.+?)>`)

// EmailMessage is an inbound mailbox message reduced to the fields the
// ingestion pipeline consumes.
type EmailMessage struct {
	ID      string
	Subject string
	From    string
	Body    string
}

// GmailClient talks to the Gmail v1 API for the authorized account.
type GmailClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGmailClient creates a Gmail client over an authorized HTTP client
func NewGmailClient(httpClient *http.Client) *GmailClient {
	return &GmailClient{httpClient: httpClient, baseURL: gmailBaseURL}
}

// WithBaseURL overrides the API endpoint, used by tests.
func (g *GmailClient) WithBaseURL(base string) *GmailClient {
	g.baseURL = base
	return g
}

func (g *GmailClient) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gmail returned status %d: %s", resp.StatusCode, string(raw))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CurrentHistoryID returns the mailbox's present history watermark from the
// profile endpoint. Used once at startup to seed the cursor; mail that
// predates the first run is never ingested.
func (g *GmailClient) CurrentHistoryID(ctx context.Context) (uint64, error) {
	var profile struct {
		EmailAddress string `json:"emailAddress"`
		HistoryID    string `json:"historyId"`
	}
	if err := g.getJSON(ctx, g.baseURL+"/users/me/profile", &profile); err != nil {
		return 0, err
	}
	return strconv.ParseUint(profile.HistoryID, 10, 64)
}

// ListNewMessages returns the ids of messages added since the given history
// watermark, together with the highest history id observed. When nothing is
// new the returned watermark equals the input.
func (g *GmailClient) ListNewMessages(ctx context.Context, sinceHistoryID uint64) ([]string, uint64, error) {
	ids := make([]string, 0)
	seen := make(map[string]bool)
	latest := sinceHistoryID

	pageToken := ""
	for {
		q := url.Values{}
		q.Set("startHistoryId", strconv.FormatUint(sinceHistoryID, 10))
		q.Set("historyTypes", "messageAdded")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page struct {
			History []struct {
				ID             string `json:"id"`
				MessagesAdded []struct {
					Message struct {
						ID string `json:"id"`
					} `json:"message"`
				} `json:"messagesAdded"`
			} `json:"history"`
			HistoryID     string `json:"historyId"`
			NextPageToken string `json:"nextPageToken"`
		}

		endpoint := g.baseURL + "/users/me/history?" + q.Encode()
		if err := g.getJSON(ctx, endpoint, &page); err != nil {
			return nil, sinceHistoryID, err
		}

		for _, h := range page.History {
			if hid, err := strconv.ParseUint(h.ID, 10, 64); err == nil && hid > latest {
				latest = hid
			}
			for _, added := range h.MessagesAdded {
				id := added.Message.ID
				if id != "" && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
		if hid, err := strconv.ParseUint(page.HistoryID, 10, 64); err == nil && hid > latest {
			latest = hid
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return ids, latest, nil
}

type gmailPayload struct {
	MimeType string `json:"mimeType"`
	Headers  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"headers"`
	Body struct {
		Data string `json:"data"`
	} `json:"body"`
	Parts []gmailPayload `json:"parts"`
}

// GetMessage fetches one message and extracts subject, sender address and the
// plain-text body.
func (g *GmailClient) GetMessage(ctx context.Context, id string) (*EmailMessage, error) {
	var msg struct {
		ID      string       `json:"id"`
		Payload gmailPayload `json:"payload"`
	}
	endpoint := fmt.Sprintf("%s/users/me/messages/%s?format=full", g.baseURL, url.PathEscape(id))
	if err := g.getJSON(ctx, endpoint, &msg); err != nil {
		return nil, err
	}

	out := &EmailMessage{ID: msg.ID}
	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "subject":
			out.Subject = h.Value
		case "from":
			out.From = extractAddress(h.Value)
		}
	}
	out.Body = extractPlainText(msg.Payload)
	return out, nil
}

// SendMessage submits a raw RFC 2822 message, already base64url encoded.
func (g *GmailClient) SendMessage(ctx context.Context, raw string) error {
	body, err := json.Marshal(map[string]string{"raw": raw})
	if err != nil {
		return err
	}

	endpoint := g.baseURL + "/users/me/messages/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("gmail send returned status %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

// extractAddress pulls the bare address out of a From header like
// "Alice <alice@example.com>". Headers that are already bare pass through.
func extractAddress(from string) string {
	if m := fromAddrPattern.FindStringSubmatch(from); m != nil {
		return m[1]
	}
	return strings.TrimSpace(from)
}

// extractPlainText walks the MIME tree depth-first and returns the first
// text/plain part, falling back to the top-level body.
func extractPlainText(p gmailPayload) string {
	if p.MimeType == "text/plain" && p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}
	for _, part := range p.Parts {
		if text := extractPlainText(part); text != "" {
			return text
		}
	}
	if p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return ""
	}
	return string(decoded)
}
