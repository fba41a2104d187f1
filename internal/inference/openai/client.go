package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/studyloop/studyloop/internal/inference"
)

type Client struct {
	httpClient       *resty.Client
	model            string
	maxRetryAttempts uint
}

func NewClient(apiKey, model string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		maxRetryAttempts: retryAttempts,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	// Retry on rate limiting (429)
	if strings.Contains(errStr, "response error 429") {
		return true
	}

	return false
}

// ExtractTopics implements the inference.Client interface
func (client *Client) ExtractTopics(
	ctx context.Context,
	params inference.ExtractTopicsRequest,
) (inference.ExtractTopicsResponse, error) {
	var result inference.ExtractTopicsResponse
	if err := retry.Do(
		func() error {
			response, err := client.extractTopics(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.ExtractTopicsResponse{}, err
	}
	return result, nil
}

const extractTopicsSystemPrompt = `You are an expert curriculum analyst. Given the raw text of a syllabus,
assessment outline, or study material, extract the list of study topics it covers.

Return ONLY a JSON object with a "topics" array. For each topic include:
- "name": short topic title as found in (or inferred from) the document
- "difficulty_score": integer 1-10 estimating how hard the topic is to master
- "priority": "high", "medium" or "low" based on how heavily the document weights it
- "estimated_hours": rough hours of study needed, as a number
- "category": subject area such as "mathematics" or "history"

STRICT OUTPUT: no text outside the JSON. If a field cannot be estimated, omit it.
Extract at most the number of topics the user asks for; prefer the most central topics.`

func (client *Client) extractTopics(
	ctx context.Context,
	params inference.ExtractTopicsRequest,
) (inference.ExtractTopicsResponse, error) {
	if strings.TrimSpace(params.DocumentText) == "" {
		return inference.ExtractTopicsResponse{}, nil
	}

	maxTopics := params.MaxTopics
	if maxTopics <= 0 {
		maxTopics = 10
	}
	userMessage := fmt.Sprintf("Extract at most %d topics from this document:\n\n%s", maxTopics, params.DocumentText)

	content, err := client.chatCompletion(ctx, extractTopicsSystemPrompt, userMessage)
	if err != nil {
		return inference.ExtractTopicsResponse{}, err
	}

	var decoded inference.ExtractTopicsResponse
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		// Models occasionally wrap the JSON in prose or fences; try to
		// salvage the object before giving up.
		repaired := ExtractJSONObject(content)
		if repairErr := json.Unmarshal([]byte(repaired), &decoded); repairErr != nil {
			slog.Default().Error("Failed to parse OpenAI topic extraction response as JSON",
				"documentLength", len(params.DocumentText),
				"error", err)
			return inference.ExtractTopicsResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
		}
	}
	return decoded, nil
}

// GenerateQuiz implements the inference.Client interface
func (client *Client) GenerateQuiz(
	ctx context.Context,
	params inference.GenerateQuizRequest,
) (inference.GenerateQuizResponse, error) {
	var result inference.GenerateQuizResponse
	if err := retry.Do(
		func() error {
			response, err := client.generateQuiz(ctx, params)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	); err != nil {
		return inference.GenerateQuizResponse{}, err
	}
	return result, nil
}

const generateQuizSystemPrompt = `You are a study-quiz author. Write multiple-choice questions for the
requested topics.

Return ONLY a JSON object with a "questions" array. For each question include:
- "topic": the topic the question covers
- "question": the question text
- "options": exactly four answer options
- "correct_index": 0-based index of the correct option
- "explanation": one sentence explaining the correct answer

STRICT OUTPUT: no text outside the JSON. Spread questions evenly across topics.`

func (client *Client) generateQuiz(
	ctx context.Context,
	params inference.GenerateQuizRequest,
) (inference.GenerateQuizResponse, error) {
	if len(params.Topics) == 0 {
		return inference.GenerateQuizResponse{}, nil
	}

	numQuestions := params.NumQuestions
	if numQuestions <= 0 {
		numQuestions = 5
	}
	userMessage := fmt.Sprintf("Write %d questions covering these topics: %s", numQuestions, strings.Join(params.Topics, ", "))

	content, err := client.chatCompletion(ctx, generateQuizSystemPrompt, userMessage)
	if err != nil {
		return inference.GenerateQuizResponse{}, err
	}

	var decoded inference.GenerateQuizResponse
	if err := json.NewDecoder(strings.NewReader(content)).Decode(&decoded); err != nil {
		repaired := ExtractJSONObject(content)
		if repairErr := json.Unmarshal([]byte(repaired), &decoded); repairErr != nil {
			return inference.GenerateQuizResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
		}
	}
	return decoded, nil
}

func (client *Client) chatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.1,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userMessage},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}

// ExtractJSONObject attempts to salvage the first complete JSON object from
// content that wraps it in extra text, respecting braces inside strings.
func ExtractJSONObject(content string) string {
	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch ch {
			case '{':
				if firstBrace == -1 {
					firstBrace = i
				}
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 && firstBrace != -1 {
					return content[firstBrace : i+1]
				}
			}
		}
	}

	return content
}
