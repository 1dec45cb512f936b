package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const maxResponseLength = 280

// GenerationRequest is the contract with the external text collaborator.
type GenerationRequest struct {
	Persona Persona
	Phase   Phase
	Prompt  string
	Recent  []Message
	ReplyTo string // most recent roast line, empty outside the roast phase
}

// TextGenerator produces one in-character chat line. Failures are recovered
// by the orchestrator with the persona's fallback; implementations never need
// to return canned text themselves.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// LLMGenerator calls an OpenAI-style chat completions endpoint.
type LLMGenerator struct {
	APIURL string
	APIKey string
	Model  string
	Client *http.Client
}

func NewLLMGenerator(apiURL, apiKey, model string) *LLMGenerator {
	return &LLMGenerator{
		APIURL: apiURL,
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *LLMGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(req.Persona)},
			{Role: "user", Content: userPrompt(req)},
		},
		MaxTokens:   150,
		Temperature: 0.9,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.APIURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation request failed: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generation response had no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	text = strings.Trim(text, `"'`)
	if len([]rune(text)) > maxResponseLength {
		r := []rune(text)
		text = string(r[:maxResponseLength-3]) + "..."
	}
	if text == "" {
		return "", fmt.Errorf("generation response was empty")
	}
	return text, nil
}

func systemPrompt(p Persona) string {
	return fmt.Sprintf(`You are %s, playing a social deduction game. %s

PERSONALITY: %s
SPEAKING STYLE: %s
QUIRK: %s

CRITICAL RULES:
- Stay COMPLETELY in character at all times
- Keep responses SHORT (1-3 sentences, max 280 characters)
- NEVER reveal you are AI
- NEVER break character
- Be entertaining and memorable
- React to what others said when relevant`, p.Name, p.Description, p.Personality, p.Style, p.Quirk)
}

func userPrompt(req GenerationRequest) string {
	var recent []string
	msgs := req.Recent
	if len(msgs) > 5 {
		msgs = msgs[len(msgs)-5:]
	}
	for _, m := range msgs {
		recent = append(recent, m.PlayerName+": "+m.Text)
	}
	chat := strings.Join(recent, "\n")

	switch req.Phase {
	case PhaseRound1:
		return fmt.Sprintf("The topic is: %q\n\nRecent chat:\n%s\n\nGive your hot take. Stay in character as %s. Keep it short and spicy.",
			req.Prompt, chat, req.Persona.Name)
	case PhaseRound2:
		opener := "Start with an opening roast about someone in the chat."
		if req.ReplyTo != "" {
			opener = fmt.Sprintf("Someone just said: %q. DESTROY THEM with a roast.", req.ReplyTo)
		}
		return fmt.Sprintf("ROAST BATTLE! %s\n\nRecent chat:\n%s\n\nRoast them! Stay in character as %s. Be savage but funny.",
			opener, chat, req.Persona.Name)
	case PhaseRound3:
		return fmt.Sprintf("CHAOS ROUND! Everyone is trying to figure out who's the real human. You're suspicious of everyone.\n\nRecent chat:\n%s\n\nSay something chaotic, accuse someone, defend yourself, or just cause chaos. Stay in character as %s.",
			chat, req.Persona.Name)
	default:
		return fmt.Sprintf("Say something in character as %s. Keep it short.", req.Persona.Name)
	}
}

// OfflineGenerator always fails, which routes every agent line through the
// persona fallbacks. Used in demo mode and in tests.
type OfflineGenerator struct{}

func (OfflineGenerator) Generate(context.Context, GenerationRequest) (string, error) {
	return "", fmt.Errorf("text generation disabled")
}
