package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"goal-planner/domain"
)

const openAIURL = "https://api.openai.com/v1/chat/completions"

// AIService writes a short plain-language summary of a projection. Without an
// API key, or when the call fails, a template summary is returned instead.
type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
	log        *slog.Logger
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService(apiKey string, log *slog.Logger) *AIService {
	return &AIService{
		apiKey:  apiKey,
		apiURL:  openAIURL,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ExplainGoal summarizes result for the goal described by req.
func (s *AIService) ExplainGoal(ctx context.Context, req domain.GoalRequest, result domain.GoalResult) string {
	if !s.enabled {
		return s.fallbackExplanation(req, result)
	}

	financing := "The buyer pays cash."
	if result.MonthlyPayment != nil && result.PaymentPeriod != nil {
		financing = fmt.Sprintf("The buyer finances the rest with %d monthly payments of $%.2f.",
			*result.PaymentPeriod, *result.MonthlyPayment)
	}

	prompt := fmt.Sprintf(`Summarize this car purchase plan for the buyer.

VEHICLE: %s %s %d
PRICE AT PURCHASE: $%.2f
DOWN PAYMENT: $%.2f
ESTIMATED PURCHASE DATE: %s
MONTHLY SAVING: $%.2f
%s
ON PROMOTION: %t

Write 2-3 sentences, specific with amounts and dates, realistic and encouraging.`,
		req.Condition(), req.Model, req.Year,
		result.CarPrice, result.DownPayment, result.EstimatedDate,
		req.MonthlySaving, financing, result.Promotion)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.log.Warn("explanation request failed, using fallback", "err", err)
		return s.fallbackExplanation(req, result)
	}

	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "You are a personal finance advisor who helps people plan vehicle purchases. You explain savings and financing plans clearly and briefly.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) fallbackExplanation(req domain.GoalRequest, result domain.GoalResult) string {
	text := fmt.Sprintf("Saving $%.2f a month, you can buy the %s %s %d around %s with a down payment of $%.2f.",
		req.MonthlySaving, req.Condition(), req.Model, req.Year, result.EstimatedDate, result.DownPayment)
	if result.MonthlyPayment != nil && result.PaymentPeriod != nil {
		text += fmt.Sprintf(" The remaining balance is paid in %d installments of $%.2f.",
			*result.PaymentPeriod, *result.MonthlyPayment)
	}
	if result.Promotion {
		text += " This model is currently on promotion."
	}
	return text
}
