package service

import (
	"ai_hub_backend/internal/config"
	"ai_hub_backend/internal/model"
	"ai_hub_backend/internal/repository"
	"ai_hub_backend/internal/util"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// strategicPillars maps a department to the company pillar its AI adoption
// supports; injected into helper prompts.
var strategicPillars = map[string]string{
	"sales":            "GLOBAL EDGE by improving proactive outreach and data-driven decision making",
	"marketing":        "Innovation Focus through AI-powered content strategies and GLOBAL EDGE via data-driven marketing",
	"operations":       "STOCKSMART through optimized processes and ONE TEAM via clear documentation",
	"leadership":       "Innovation Focus by leading AI adoption and GLOBAL EDGE through strategic intelligence",
	"it":               "Innovation Focus through robust technical infrastructure and ONE TEAM via improved systems",
	"customer-service": "Service Excellence and customer relationships, supporting GLOBAL EDGE through superior experience",
}

const helperSystemPrompt = `You are an AI assistant for Dynamics G-Ex, helping employees learn how to use Microsoft Copilot to solve their challenges.

Your tone should be professional yet cheerful, practical and actionable, encouraging and supportive.

You should provide:
1. Step-by-step approach (3-5 practical steps)
2. Recommended Microsoft Copilot tool/feature
3. Why this helps (connected to company strategy)
4. Strategic alignment with company pillars

Keep responses concise but helpful. Focus on practical, actionable advice.`

// AssistantService relays chat requests to an OpenAI-compatible provider and
// persists conversations so follow-ups thread by conversation_id.
type AssistantService struct {
	mu     sync.RWMutex
	cfg    config.AIConfig
	Repo   *repository.ConversationRepository
	client *http.Client
}

func NewAssistantService(cfg config.AIConfig, repo *repository.ConversationRepository) *AssistantService {
	return &AssistantService{
		cfg:  cfg,
		Repo: repo,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// UpdateConfig swaps provider settings on config reload.
func (s *AssistantService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *AssistantService) providerConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// complete runs one blocking completion call. Failures of the provider itself,
// transport, bad status, or a malformed reply, wrap util.ErrAIProvider so
// callers can tell them apart from local storage errors.
func (s *AssistantService) complete(ctx context.Context, messages []ChatMessage, jsonMode bool) (string, error) {
	cfg := s.providerConfig()

	reqBody := chatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIProvider, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", util.ErrAIProvider, resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrAIProvider, err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", util.ErrAIProvider)
	}
	return result.Choices[0].Message.Content, nil
}

type HelperRequest struct {
	Name       string `json:"name" binding:"required"`
	Department string `json:"department" binding:"required"`
	Challenge  string `json:"challenge" binding:"required"`
}

type HelperResponse struct {
	Approach           string `json:"approach"`
	Tool               string `json:"tool"`
	Why                string `json:"why"`
	StrategicAlignment string `json:"strategic_alignment"`
	ConversationID     string `json:"conversation_id"`
}

// Helper answers a one-shot challenge with a structured suggestion, logs the
// exchange for adoption analytics, and seeds a conversation so the user can
// follow up through Chat.
func (s *AssistantService) Helper(ctx context.Context, req HelperRequest) (*HelperResponse, error) {
	pillar, ok := strategicPillars[req.Department]
	if !ok {
		pillar = "organizational excellence"
	}

	userPrompt := fmt.Sprintf(`A %s team member named %s has the following challenge:

%q

Please provide:
1. A step-by-step approach to tackle this challenge (be specific and actionable)
2. The recommended Microsoft Copilot tool or feature (e.g., "Copilot in Excel", "Copilot in Word", "Copilot in Teams", "Copilot in Outlook", "Copilot in PowerPoint", or just "Copilot")
3. Why this helps the %s department
4. How this aligns with Dynamics G-Ex's strategic pillar: %s

Format your response as JSON with keys: approach, tool, why, strategic_alignment`,
		req.Department, req.Name, req.Challenge, req.Department, pillar)

	messages := []ChatMessage{
		{Role: "system", Content: helperSystemPrompt},
		{Role: "user", Content: userPrompt},
	}

	raw, err := s.complete(ctx, messages, true)
	if err != nil {
		return nil, err
	}

	var helperResp HelperResponse
	if err := json.Unmarshal([]byte(raw), &helperResp); err != nil {
		return nil, fmt.Errorf("%w: unexpected response format: %v", util.ErrAIProvider, err)
	}

	conv := &model.AIConversation{Kind: "helper", SystemPrompt: helperSystemPrompt}
	if err := s.Repo.Create(conv); err != nil {
		return nil, err
	}
	if err := s.Repo.AddMessage(&model.AIMessage{ConversationID: conv.ID, Role: "user", Content: userPrompt}); err != nil {
		return nil, err
	}
	if err := s.Repo.AddMessage(&model.AIMessage{ConversationID: conv.ID, Role: "assistant", Content: raw}); err != nil {
		return nil, err
	}
	helperResp.ConversationID = conv.ID

	responseJSON, _ := json.Marshal(helperResp)
	if err := s.Repo.LogHelperRequest(&model.AIHelperRequest{
		Name:       req.Name,
		Department: req.Department,
		Challenge:  req.Challenge,
		Response:   responseJSON,
	}); err != nil {
		return nil, err
	}

	return &helperResp, nil
}

type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

type ModuleAssistantRequest struct {
	Message        string `json:"message" binding:"required"`
	ModuleID       int    `json:"module_id"`
	ModuleName     string `json:"module_name"`
	ModuleContext  string `json:"module_context"`
	ConversationID string `json:"conversation_id"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}

// Chat continues (or starts) a general assistant conversation.
func (s *AssistantService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	newConv := func() *model.AIConversation {
		return &model.AIConversation{
			Kind:         "chat",
			SystemPrompt: "You are a helpful AI assistant for Dynamics G-Ex employees learning to use Microsoft Copilot and AI tools at work. Keep answers practical and concise.",
		}
	}
	return s.converse(ctx, req.ConversationID, req.Message, newConv)
}

// ModuleAssistant continues (or starts) a per-module tutoring conversation;
// the module context is pinned in the system prompt at conversation start.
func (s *AssistantService) ModuleAssistant(ctx context.Context, req ModuleAssistantRequest) (*ChatResponse, error) {
	newConv := func() *model.AIConversation {
		prompt := fmt.Sprintf("You are the training assistant for %q (module %d) on the Dynamics G-Ex AI Hub. Answer questions about the module content only. Module context:\n\n%s",
			req.ModuleName, req.ModuleID, req.ModuleContext)
		return &model.AIConversation{
			Kind:         "module",
			ModuleID:     req.ModuleID,
			ModuleName:   req.ModuleName,
			SystemPrompt: prompt,
		}
	}
	return s.converse(ctx, req.ConversationID, req.Message, newConv)
}

func (s *AssistantService) converse(ctx context.Context, conversationID, message string, newConv func() *model.AIConversation) (*ChatResponse, error) {
	var conv *model.AIConversation
	var err error

	if conversationID != "" {
		conv, err = s.Repo.FindByID(conversationID)
		if err != nil {
			return nil, err
		}
	} else {
		conv = newConv()
		if err := s.Repo.Create(conv); err != nil {
			return nil, err
		}
	}

	history, err := s.Repo.ListMessages(conv.ID)
	if err != nil {
		return nil, err
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: conv.SystemPrompt})
	for _, m := range history {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	reply, err := s.complete(ctx, messages, false)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.AddMessage(&model.AIMessage{ConversationID: conv.ID, Role: "user", Content: message}); err != nil {
		return nil, err
	}
	if err := s.Repo.AddMessage(&model.AIMessage{ConversationID: conv.ID, Role: "assistant", Content: reply}); err != nil {
		return nil, err
	}

	return &ChatResponse{Response: reply, ConversationID: conv.ID}, nil
}
