// Package genainarrator generates event prose with the Gemini API.
package genainarrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tavernbot/internal/app/ports"
)

const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("narration response contained no text")

type Narrator struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Narrator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Narrator{client: client, model: model}, nil
}

func (n *Narrator) Close() error {
	return n.client.Close()
}

func (n *Narrator) Intro(ctx context.Context, req ports.IntroRequest) (string, error) {
	return n.generate(ctx, req.PersonaPrompt, introPrompt(req))
}

func (n *Narrator) Outcome(ctx context.Context, req ports.OutcomeRequest) (string, error) {
	return n.generate(ctx, req.PersonaPrompt, outcomePrompt(req))
}

func (n *Narrator) generate(ctx context.Context, system, prompt string) (string, error) {
	model := n.client.GenerativeModel(n.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate narration: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

var _ ports.Narrator = (*Narrator)(nil)
