package ai

import (
	"fmt"
	"strings"

	"github.com/hrishikeshyadav/portfolio/backend/internal/model/persona"
)

// BuildSystemPrompt returns the persona's fixed instruction, or a basic one assembled
// from its public fields when none is configured.
func BuildSystemPrompt(p persona.Persona) string {
	if strings.TrimSpace(p.SystemPrompt) != "" {
		return p.SystemPrompt
	}
	return buildBasicSystemPrompt(p)
}

func buildBasicSystemPrompt(p persona.Persona) string {
	topics := "their work"
	if len(p.Expertise) > 0 {
		topics = strings.Join(p.Expertise, ", ")
	}

	return fmt.Sprintf(`You are %s, the %s for %s.

Answer visitors' questions about %s.
Tone: %s.`,
		p.Name,
		p.Title,
		p.Owner,
		topics,
		p.Tone,
	)
}
