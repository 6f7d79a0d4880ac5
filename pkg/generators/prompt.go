package generators

import (
	"fmt"
	"strings"

	"github.com/kerbaras/storytime/pkg/story"
)

const systemPrompt = `You write short, gentle, age-appropriate picture book stories for young children.
Answer with JSON only, using exactly this shape:
{"title": "<story title>", "pages": [{"text": "<one short paragraph>", "illustration": "<one sentence describing the picture>"}]}
Every page except the last ends with "Turn the page." and the last page ends with "The End."`

func userPrompt(p story.Prompt, pages int) string {
	return fmt.Sprintf(
		"Write a %s story in exactly %d pages.\nTheme: %s\nMood: %s\nSetting: %s\nCharacters: %s",
		strings.ToLower(p.Mood), pages, p.Theme, p.Mood, p.Setting, strings.Join(p.Characters, ", "),
	)
}
