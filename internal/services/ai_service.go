package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	recommendMaxTokens = 1024
	chatMaxTokens      = 512
	aiTemperature      = 0.7

	// chatContextWindow bounds how much history reaches the model;
	// chatHistoryCap bounds what is kept in Redis.
	chatContextWindow = 10
	chatHistoryCap    = 50
)

const recommendSystemPrompt = "You are a helpful project management assistant. " +
	"Analyze the task and its progress notes, then provide actionable recommendations. " +
	"Be concise and practical. Format your response with these sections:\n" +
	"📋 Summary | ⚡ Next Steps | ⏱️ Time Estimate | ⚠️ Potential Blockers | 🎯 Priority"

type aiServiceImpl struct {
	logger    zerolog.Logger
	client    *genai.Client
	modelName string
	timeout   time.Duration
	tasks     TaskService
	notes     NoteService
	rdb       *redis.Client
}

// NewAIService wires the Gemini-backed endpoints. A nil client means the API
// key was not configured; both operations then fail with ErrAIUnavailable.
// A nil rdb degrades chat history to per-request memory only.
func NewAIService(
	logger zerolog.Logger,
	client *genai.Client,
	modelName string,
	timeout time.Duration,
	tasks TaskService,
	notes NoteService,
	rdb *redis.Client,
) AIService {
	return &aiServiceImpl{
		logger:    logger,
		client:    client,
		modelName: modelName,
		timeout:   timeout,
		tasks:     tasks,
		notes:     notes,
		rdb:       rdb,
	}
}

func (s *aiServiceImpl) RecommendForTask(ctx context.Context, userID, taskID string) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}

	task, err := s.tasks.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return "", err
	}
	notes, err := s.notes.GetNotesByTaskID(ctx, userID, taskID)
	if err != nil {
		return "", err
	}

	var notesText strings.Builder
	for _, note := range notes {
		fmt.Fprintf(&notesText, "  - [%s] %s\n",
			note.CreatedAt.Format(time.RFC3339), note.Content)
	}
	if notesText.Len() == 0 {
		notesText.WriteString("  (no notes yet)")
	}

	prompt := fmt.Sprintf(
		"Task: %s\nDescription: %s\nStatus: %s\nCreated: %s\nProgress Notes:\n%s",
		task.Title,
		orDefault(task.Description, "N/A"),
		task.Status,
		task.CreatedAt.Format(time.RFC3339),
		notesText.String(),
	)

	ctx, cancel := s.requestCtx(ctx)
	defer cancel()

	model := s.model(recommendSystemPrompt, recommendMaxTokens)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("gemini recommendation request failed")
		return "", err
	}

	return responseText(resp), nil
}

func (s *aiServiceImpl) Chat(ctx context.Context, params ChatParams) (string, error) {
	if s.client == nil {
		return "", ErrAIUnavailable
	}

	message := strings.TrimSpace(params.Message)
	if message == "" {
		return "", ErrMessageRequired
	}

	tasks, err := s.tasks.GetTasksByUserID(ctx, params.UserID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	var summary strings.Builder
	for _, task := range tasks {
		status, _ := task.DisplayAt(now)
		fmt.Fprintf(&summary, "- [%s] %s (%d notes)\n",
			strings.ToUpper(status), task.Title, task.NotesCount)
	}
	if summary.Len() == 0 {
		summary.WriteString("(no tasks)")
	}

	system := "You are a smart task management assistant. You have access to the user's " +
		"current tasks listed below. Help them with task planning, prioritization, " +
		"progress tracking, and general productivity advice. Be friendly and concise.\n\n" +
		"USER'S TASKS:\n" + summary.String()

	history := params.History
	if history == nil {
		history = s.loadHistory(ctx, params.UserID)
	}
	if len(history) > chatContextWindow {
		history = history[len(history)-chatContextWindow:]
	}

	ctx, cancel := s.requestCtx(ctx)
	defer cancel()

	model := s.model(system, chatMaxTokens)
	chat := model.StartChat()
	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", params.UserID).
			Msg("gemini chat request failed")
		return "", err
	}

	reply := responseText(resp)
	s.appendHistory(ctx, params.UserID,
		ChatMessage{Role: "user", Content: message},
		ChatMessage{Role: "assistant", Content: reply},
	)
	return reply, nil
}

// requestCtx bounds one model call; a zero timeout leaves the request
// context as-is.
func (s *aiServiceImpl) requestCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *aiServiceImpl) model(systemInstruction string, maxTokens int32) *genai.GenerativeModel {
	model := s.client.GenerativeModel(s.modelName)
	model.SetMaxOutputTokens(maxTokens)
	model.SetTemperature(aiTemperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	return model
}

func chatHistoryKey(userID string) string {
	return "chat:history:" + userID
}

func (s *aiServiceImpl) loadHistory(ctx context.Context, userID string) []ChatMessage {
	if s.rdb == nil {
		return nil
	}

	raw, err := s.rdb.LRange(ctx, chatHistoryKey(userID), 0, -1).Result()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to load chat history")
		return nil
	}

	history := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg ChatMessage
		if json.Unmarshal([]byte(item), &msg) == nil {
			history = append(history, msg)
		}
	}
	return history
}

func (s *aiServiceImpl) appendHistory(ctx context.Context, userID string, messages ...ChatMessage) {
	if s.rdb == nil {
		return
	}

	key := chatHistoryKey(userID)
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		if err = s.rdb.RPush(ctx, key, data).Err(); err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("failed to append chat history")
			return
		}
	}
	_ = s.rdb.LTrim(ctx, key, -chatHistoryCap, -1).Err()
}

// responseText joins the text parts of the first candidate, skipping any
// non-text parts the model may interleave.
func responseText(resp *genai.GenerateContentResponse) string {
	const fallback = "I couldn't generate a response. Please try again."
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fallback
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	if text.Len() == 0 {
		return fallback
	}
	return text.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
