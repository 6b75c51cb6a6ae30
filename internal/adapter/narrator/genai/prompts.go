package genainarrator

import (
	"fmt"

	"tavernbot/internal/app/ports"
)

func introPrompt(req ports.IntroRequest) string {
	who := "for the player"
	if req.Target != "" {
		who = "for " + req.Target
	}
	return fmt.Sprintf(
		"Write a short scene opening %s based on this declared action: %q. "+
			"Give 2-4 cinematic sentences in plain text, ending just before the dice decide the outcome. "+
			"You may wrap one short physical action in *asterisks* for emphasis.",
		who, req.Description)
}

func outcomePrompt(req ports.OutcomeRequest) string {
	verdict := "FAILURE"
	if req.Success {
		verdict = "SUCCESS"
	}
	p := fmt.Sprintf(
		"Continue the scene for the declared action %q. Check: %s. Roll: %d against difficulty %d. Verdict: %s. "+
			"Write 2-4 plain-text sentences resolving the scene accordingly.",
		req.Description, req.CheckType, req.Roll, req.DC, verdict)
	if req.Target != "" {
		p += fmt.Sprintf(" The scene is about %s.", req.Target)
	}
	if req.LootHint != "" {
		p += fmt.Sprintf(" Weave in that an item appears amid the aftermath: %s.", req.LootHint)
	}
	return p
}
