// Package static is a canned-line narrator. It backs tests and serves
// as the fallback voice when the generation service is unavailable, so
// an event never stalls on a narration fault.
package static

import (
	"context"
	"fmt"
	"math/rand"

	"tavernbot/internal/app/ports"
)

var intros = []string{
	"The tavern goes quiet as the scene takes shape: %s.",
	"Somewhere a lute string snaps. The story begins: %s.",
	"The dice gods lean in to watch: %s.",
}

var successes = []string{
	"Against all odds, it works. The onlookers will be retelling this one for weeks.",
	"A clean %s check. Even the skeptics at the bar raise their mugs.",
	"Fortune smiles. The deed is done before anyone can object.",
}

var failures = []string{
	"It goes sideways immediately. Spectacularly, even.",
	"The %s check crumbles. At least the landing was dramatic.",
	"A valiant attempt, remembered mostly for how it ended.",
}

type Narrator struct{}

func (Narrator) Intro(_ context.Context, req ports.IntroRequest) (string, error) {
	line := intros[rand.Intn(len(intros))]
	return fmt.Sprintf(line, req.Description), nil
}

func (Narrator) Outcome(_ context.Context, req ports.OutcomeRequest) (string, error) {
	pool := failures
	if req.Success {
		pool = successes
	}
	line := pool[rand.Intn(len(pool))]
	out := line
	if n := countVerbs(line); n > 0 {
		out = fmt.Sprintf(line, req.CheckType)
	}
	if req.LootHint != "" {
		out += " Something glints in the aftermath: " + req.LootHint + "."
	}
	return out, nil
}

func countVerbs(s string) int {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && s[i+1] == 's' {
			n++
		}
	}
	return n
}

var _ ports.Narrator = Narrator{}
