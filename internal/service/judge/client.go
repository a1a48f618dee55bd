// Package judge asks an external text-generation service to pick the winner
// of a finished debate.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"debate-arena/internal/model/debate"
)

// TransportError reports a non-success response from the evaluation
// service. Status and body are for logs only, never for participants.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("evaluation service returned %d: %s", e.Status, e.Body)
}

// Config describes the outbound evaluation call.
type Config struct {
	URL          string
	Token        string
	MaxNewTokens int
	Timeout      time.Duration
}

// Client performs the single evaluation call per debate.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	if cfg.MaxNewTokens <= 0 {
		cfg.MaxNewTokens = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxNewTokens int `json:"max_new_tokens"`
}

type generationResult struct {
	GeneratedText string `json:"generated_text"`
}

// BuildPrompt renders the transcript in arrival order followed by the
// verdict instruction.
func BuildPrompt(transcript []debate.Message) string {
	var b strings.Builder
	for i, msg := range transcript {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(msg.User)
		b.WriteString(": ")
		b.WriteString(msg.Text)
	}
	b.WriteString("\n\nWho wins this debate? Reply with exactly \"User A\" or \"User B\".")
	return b.String()
}

// Evaluate sends the transcript to the generation service and returns the
// winner label: the first line of the trimmed generated text, verbatim.
func (c *Client) Evaluate(ctx context.Context, transcript []debate.Message) (string, error) {
	payload, err := json.Marshal(generationRequest{
		Inputs:     BuildPrompt(transcript),
		Parameters: generationParameters{MaxNewTokens: c.cfg.MaxNewTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build evaluation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call evaluation service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read evaluation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{Status: resp.StatusCode, Body: string(body)}
	}

	var results []generationResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("parse evaluation response: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("parse evaluation response: empty result array")
	}

	winner, _, _ := strings.Cut(strings.TrimSpace(results[0].GeneratedText), "\n")
	return winner, nil
}
