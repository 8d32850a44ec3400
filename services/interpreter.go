package services

import (
	"fmt"
	"strings"
)

// TemplateInterpreter composes interpretations from fixed card meanings
// and per-spread position labels. It is the built-in generator used
// until an external one is plugged in.
type TemplateInterpreter struct{}

var cardMeanings = map[string]string{
	"the fool":             "new beginnings, spontaneity and a leap of faith",
	"the magician":         "willpower, resourcefulness and manifesting your intent",
	"the high priestess":   "intuition, hidden knowledge and inner voice",
	"the empress":          "abundance, nurture and creative growth",
	"the emperor":          "structure, authority and solid foundations",
	"the hierophant":       "tradition, guidance and shared beliefs",
	"the lovers":           "union, choices of the heart and alignment of values",
	"the chariot":          "determination, momentum and hard-won victory",
	"strength":             "quiet courage, patience and compassion",
	"the hermit":           "introspection, solitude and the search for truth",
	"wheel of fortune":     "cycles, turning points and fate in motion",
	"justice":              "fairness, accountability and cause and effect",
	"the hanged man":       "surrender, a new perspective and sacred pause",
	"death":                "endings that clear the way for transformation",
	"temperance":           "balance, moderation and patient blending",
	"the devil":            "attachment, temptation and self-imposed chains",
	"the tower":            "sudden upheaval that topples false structures",
	"the star":             "hope, healing and renewed faith",
	"the moon":             "illusion, dreams and the subconscious tide",
	"the sun":              "vitality, clarity and uncomplicated joy",
	"judgement":            "reckoning, awakening and an honest self-review",
	"the world":            "completion, integration and a cycle fulfilled",
}

var spreadPositions = map[string][]string{
	"single_card":  {"The essence of your question"},
	"three_card":   {"Your past", "Your present", "Your path ahead"},
	"celtic_cross": {"Your present", "Your challenge", "Your foundation", "Your recent past", "Your potential", "Your near future", "Your attitude", "Your surroundings", "Your hopes and fears", "The outcome"},
}

func (TemplateInterpreter) Interpret(spreadType, question string, cards []string) (string, error) {
	positions, ok := spreadPositions[spreadType]
	if !ok {
		return "", fmt.Errorf("no spread template for %q", spreadType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You asked: %q.\n\n", question)
	for i, card := range cards {
		meaning, ok := cardMeanings[strings.ToLower(strings.TrimSpace(card))]
		if !ok {
			meaning = "an energy that asks to be read in the context of its neighbors"
		}
		position := "This card"
		if i < len(positions) {
			position = positions[i]
		}
		fmt.Fprintf(&b, "%s (%s): %s.\n", position, card, meaning)
	}
	b.WriteString("\nTake what resonates; the cards advise, they do not decide.")
	return b.String(), nil
}
