// Package insight sends the visible task/project/client context to a
// language model and returns free-text analysis. Failures never escape as
// errors; the caller always gets a displayable string.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/timelex/timelex-cli/internal/logger"
	"github.com/timelex/timelex-cli/internal/models"
)

const (
	systemInstruction = "You are a professional business consultant specializing in time management and freelance finances. Keep your response concise and formatted as markdown."

	defaultCustomModel  = "gpt-3.5-turbo"
	defaultGeminiModel  = "gemini-3-flash-preview"
	defaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// APIKeyEnv names the environment variable holding the default
	// provider's key.
	APIKeyEnv = "TIMELEX_AI_API_KEY"

	fallbackMessage   = "Unable to generate smart insights at this moment."
	unexpectedMessage = "Insight retrieved, but format was unexpected."
)

type Service struct {
	http      *http.Client
	geminiURL string
}

func NewService() *Service {
	return &Service{
		http:      &http.Client{Timeout: 60 * time.Second},
		geminiURL: defaultGeminiAPIURL,
	}
}

// buildContext serializes the full visible collections as structured text.
func buildContext(tasks []models.Task, projects []models.Project, clients []models.Client) string {
	tasksJSON, _ := json.Marshal(tasks)
	projectsJSON, _ := json.Marshal(projects)
	clientsJSON, _ := json.Marshal(clients)
	return fmt.Sprintf(`
    I have a list of time tracking tasks: %s.
    Projects: %s.
    Clients: %s.
    Please provide a brief, professional summary of productivity trends and financial insights.
    Focus on which project is most profitable and any time management tips.
  `, tasksJSON, projectsJSON, clientsJSON)
}

// GetSmartInsights requests an analysis of the given collections. It uses
// the custom endpoint when configured, otherwise the default provider. The
// whole response is awaited; there is no retry and no streaming.
func (s *Service) GetSmartInsights(ctx context.Context, tasks []models.Task, projects []models.Project, clients []models.Client, cfg models.AIConfig) string {
	prompt := buildContext(tasks, projects, clients)

	if cfg.UseCustom && cfg.Endpoint != "" {
		text, err := s.queryCustom(ctx, prompt, cfg)
		if err != nil {
			logger.Error("Custom insight endpoint failed", "error", err)
			return fmt.Sprintf("Custom API communication failed: %v", err)
		}
		return text
	}

	text, err := s.queryGemini(ctx, prompt)
	if err != nil {
		logger.Error("Default insight provider failed", "error", err)
		return fallbackMessage
	}
	return text
}

// normalizeEndpoint appends /chat/completions to bare base URLs.
func normalizeEndpoint(endpoint string) string {
	url := strings.TrimRight(endpoint, "/")
	if !strings.HasSuffix(url, "/chat/completions") {
		url += "/chat/completions"
	}
	return url
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Text string `json:"text"`
}

func (s *Service) queryCustom(ctx context.Context, prompt string, cfg models.AIConfig) (string, error) {
	model := cfg.Model
	if model == "" {
		model = defaultCustomModel
	}
	body := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemInstruction},
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, normalizeEndpoint(cfg.Endpoint), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != "" {
		return parsed.Choices[0].Message.Content, nil
	}
	if parsed.Text != "" {
		return parsed.Text, nil
	}
	return unexpectedMessage, nil
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction geminiContent   `json:"systemInstruction"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (s *Service) queryGemini(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("%s is not set", APIKeyEnv)
	}

	body := geminiRequest{
		Contents:          []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SystemInstruction: geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.geminiURL, defaultGeminiModel, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("provider returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
