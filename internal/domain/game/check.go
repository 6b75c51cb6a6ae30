package game

import "math/rand"

const (
	DCMin = 1
	DCMax = 20
)

// DefaultCheckTypes is the label set a check is drawn from. Labels are
// presentation and prompt material only; no rules hang off them.
var DefaultCheckTypes = []string{
	"Agility",
	"Charisma",
	"Luck",
	"Perception",
	"Intimidation",
	"Stealth",
}

// D20 returns a uniform roll in [1, 20].
func D20() int {
	return rand.Intn(DCMax) + 1
}

// CheckSuccess reports whether a roll beats the difficulty.
// Rolling exactly the DC counts as success.
func CheckSuccess(roll, dc int) bool {
	return roll >= dc
}

func PickCheckType(types []string) string {
	if len(types) == 0 {
		types = DefaultCheckTypes
	}
	return types[rand.Intn(len(types))]
}
