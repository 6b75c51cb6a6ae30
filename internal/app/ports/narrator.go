package ports

import "context"

type IntroRequest struct {
	Target        string
	Description   string
	PersonaPrompt string
}

type OutcomeRequest struct {
	Success       bool
	CheckType     string
	DC            int
	Roll          int
	Target        string
	Description   string
	PersonaPrompt string
	// LootHint names the item offered alongside the outcome, or "".
	LootHint string
}

// Narrator produces free-form event prose from structured parameters.
// Pure request/response; implementations hold no session state.
type Narrator interface {
	Intro(ctx context.Context, req IntroRequest) (string, error)
	Outcome(ctx context.Context, req OutcomeRequest) (string, error)
}
