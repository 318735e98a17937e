package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsYAML []byte

const (
	useChat        = "chat"
	useWorkoutPlan = "workout_plan"
	useNutrition   = "nutrition"
	useMotivation  = "motivation"
)

// Prompt is the system prompt and sampling budget of one AI use case.
type Prompt struct {
	System      string  `yaml:"system"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

func loadPrompts(data []byte) (map[string]Prompt, error) {
	prompts := map[string]Prompt{}
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}
	for _, use := range []string{useChat, useWorkoutPlan, useNutrition, useMotivation} {
		if prompts[use].System == "" {
			return nil, fmt.Errorf("prompt %q is missing", use)
		}
	}
	return prompts, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// AIService proxies the OpenAI chat-completions API.
type AIService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	prompts map[string]Prompt
}

func NewAIService(apiKey, baseURL, model string, timeout time.Duration) (*AIService, error) {
	prompts, err := loadPrompts(promptsYAML)
	if err != nil {
		return nil, err
	}
	return &AIService{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		prompts: prompts,
	}, nil
}

func (s *AIService) Enabled() bool {
	return s.apiKey != ""
}

func (s *AIService) Chat(ctx context.Context, req domain.AIChatRequest) (*domain.AIResponse, error) {
	msgs := make([]chatMessage, 0, len(req.History)+1)
	for _, h := range req.History {
		msgs = append(msgs, chatMessage{Role: h.Role, Content: h.Content})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Message})
	return s.complete(ctx, useChat, msgs)
}

func (s *AIService) WorkoutPlan(ctx context.Context, req domain.WorkoutPlanRequest) (*domain.AIResponse, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-day-per-week workout plan.\n", req.DaysPerWeek)
	fmt.Fprintf(&b, "Goal: %s\n", strings.ReplaceAll(req.Goal, "_", " "))
	fmt.Fprintf(&b, "Fitness level: %s\n", req.Level)
	if len(req.Equipment) > 0 {
		fmt.Fprintf(&b, "Available equipment: %s\n", strings.Join(req.Equipment, ", "))
	} else {
		b.WriteString("Available equipment: bodyweight only\n")
	}
	if req.Limitations != "" {
		fmt.Fprintf(&b, "Limitations: %s\n", req.Limitations)
	}
	return s.complete(ctx, useWorkoutPlan, []chatMessage{{Role: "user", Content: b.String()}})
}

func (s *AIService) Nutrition(ctx context.Context, req domain.NutritionRequest) (*domain.AIResponse, error) {
	var b strings.Builder
	b.WriteString(req.Question)
	if req.Goal != "" {
		fmt.Fprintf(&b, "\nMy goal: %s", req.Goal)
	}
	if len(req.Restrictions) > 0 {
		fmt.Fprintf(&b, "\nDietary restrictions: %s", strings.Join(req.Restrictions, ", "))
	}
	return s.complete(ctx, useNutrition, []chatMessage{{Role: "user", Content: b.String()}})
}

func (s *AIService) Motivation(ctx context.Context) (*domain.AIResponse, error) {
	return s.complete(ctx, useMotivation, []chatMessage{{Role: "user", Content: "Give me a motivational message for today's workout."}})
}

func (s *AIService) complete(ctx context.Context, use string, msgs []chatMessage) (*domain.AIResponse, error) {
	if !s.Enabled() {
		return nil, domain.NewAppError(http.StatusServiceUnavailable, domain.CodeAIUnavailable, "AI assistant is not configured")
	}

	p := s.prompts[use]
	payload := completionRequest{
		Model:       s.model,
		Messages:    append([]chatMessage{{Role: "system", Content: p.System}}, msgs...),
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, aiError(fmt.Sprintf("AI provider unreachable: %v", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, aiError("failed to read AI response")
	}

	if resp.StatusCode >= 400 {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, aiError(fmt.Sprintf("AI provider error %d: %s", resp.StatusCode, msg))
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return nil, aiError("AI response has no content")
	}
	model := gjson.GetBytes(raw, "model").String()
	if model == "" {
		model = s.model
	}
	return &domain.AIResponse{
		Response:   strings.TrimSpace(content.String()),
		Model:      model,
		TokensUsed: gjson.GetBytes(raw, "usage.total_tokens").Int(),
	}, nil
}

func aiError(msg string) *domain.AppError {
	return domain.NewAppError(http.StatusBadGateway, domain.CodeAIError, msg)
}
