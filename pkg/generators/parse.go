package generators

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kerbaras/storytime/pkg/story"
)

type rawStory struct {
	Title string `json:"title"`
	Pages []struct {
		Text         string `json:"text"`
		Illustration string `json:"illustration"`
	} `json:"pages"`
}

// parseResult decodes a model answer into pages numbered from 1. Illustration
// descriptions that are not URIs become placeholder references.
func parseResult(content string, prompt story.Prompt) (*Result, error) {
	content = stripCodeFence(content)

	var raw rawStory
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", story.ErrGeneration, err)
	}

	result := &Result{Title: strings.TrimSpace(raw.Title)}
	for _, p := range raw.Pages {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		number := len(result.Pages) + 1
		result.Pages = append(result.Pages, story.Page{
			Number:       number,
			Text:         text,
			Illustration: illustrationRef(p.Illustration, prompt.Setting, number),
		})
	}

	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("%w: response has no pages", story.ErrGeneration)
	}
	if result.Title == "" {
		result.Title = defaultTitle(prompt)
	}
	return result, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func illustrationRef(desc, setting string, page int) string {
	desc = strings.TrimSpace(desc)
	if strings.HasPrefix(desc, "http://") || strings.HasPrefix(desc, "https://") {
		return desc
	}
	if story.IsPlaceholder(desc) {
		if _, err := story.ParsePlaceholder(desc); err == nil {
			return desc
		}
		desc = ""
	}
	if desc == "" {
		desc = fmt.Sprintf("%s, page %d", setting, page)
	}
	return story.Placeholder{
		Width:      800,
		Height:     600,
		Background: settingColor(setting, page),
		Foreground: "FFFFFF",
		Text:       desc,
	}.String()
}

func defaultTitle(p story.Prompt) string {
	if len(p.Characters) == 0 {
		return p.Theme + " Story"
	}
	return fmt.Sprintf("The %s %s Story", p.Characters[0], p.Theme)
}
