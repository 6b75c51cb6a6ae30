package game

import "math/rand"

// Persona is a narrator voice: the emoji and label decorate the event
// header, the prompt steers the narration service.
type Persona struct {
	Emoji  string
	Label  string
	Prompt string
	// Titled personas show their label in the event header;
	// the rest appear as emoji only.
	Titled bool
}

var DefaultPersonas = []Persona{
	{
		Emoji: "🎭",
		Label: "Dungeon Master",
		Prompt: "You are a charismatic Dungeon Master in the style of Baldur's Gate 3. " +
			"Narrate short cinematic scenes (2-4 sentences) with light humor and a fantasy-adventure " +
			"atmosphere. Friendly, playful, occasionally sarcastic, never toxic. Plain text only.",
	},
	{
		Emoji: "🍺",
		Label: "Tavern Keeper",
		Prompt: "You are a weathered tavern keeper who has seen every kind of trouble walk through " +
			"the door. Narrate short scenes (2-4 sentences) in a dry, amused voice, as if retelling " +
			"the story to regulars over a mug of ale. Plain text only.",
		Titled: true,
	},
	{
		Emoji: "🦉",
		Label: "Arcane Chronicler",
		Prompt: "You are an ancient chronicler of arcane mishaps. Narrate short scenes (2-4 sentences) " +
			"with ornate, slightly pompous language and a wink of irony. Plain text only.",
	},
}

func PickPersona(personas []Persona) Persona {
	if len(personas) == 0 {
		personas = DefaultPersonas
	}
	return personas[rand.Intn(len(personas))]
}

// Title renders the header decoration for the persona.
func (p Persona) Title() string {
	if p.Titled && p.Label != "" {
		return p.Emoji + " " + p.Label
	}
	return p.Emoji
}
