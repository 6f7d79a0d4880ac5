package generators

import (
	"context"
	"fmt"
	"strings"

	"github.com/kerbaras/storytime/pkg/story"
)

// Builtin writes stories from templates. It needs no network and always
// produces the same story for the same prompt.
type Builtin struct {
	pages int
}

func NewBuiltin(pages int) *Builtin {
	if pages < 1 {
		pages = 5
	}
	return &Builtin{pages: pages}
}

func (b *Builtin) Name() string { return "builtin" }

var characterNames = map[string]string{
	"Dog":          "Max the dog",
	"Cat":          "Whiskers the cat",
	"Bunny":        "Luna the bunny",
	"Elephant":     "Ellie the elephant",
	"Boy":          "Sam",
	"Girl":         "Mia",
	"Parents":      "Mom and Dad",
	"Firefighters": "the friendly firefighters",
	"Dino":         "Rex the dino",
	"Bird":         "Pip the bird",
}

var settingPlaces = map[string]string{
	"Forest": "a magical forest",
	"House":  "a cozy little house",
	"Jungle": "a green, leafy jungle",
	"Ocean":  "a sparkling blue ocean",
	"City":   "a busy, bright city",
	"Space":  "a starry corner of space",
	"Castle": "a tall stone castle",
	"Farm":   "a sunny farm",
}

var settingPalette = map[string][]string{
	"Forest": {"87CEEB", "98FB98", "228B22", "6B8E23", "F0E68C"},
	"House":  {"FFDAB9", "F4A460", "DEB887", "FFE4C4", "F0E68C"},
	"Jungle": {"2E8B57", "3CB371", "9ACD32", "66CDAA", "F0E68C"},
	"Ocean":  {"1E90FF", "00CED1", "4682B4", "87CEFA", "F0E68C"},
	"City":   {"708090", "FFB6C1", "B0C4DE", "DDA0DD", "F0E68C"},
	"Space":  {"191970", "483D8B", "4B0082", "6A5ACD", "F0E68C"},
	"Castle": {"A9A9A9", "BC8F8F", "DDA0DD", "CD853F", "F0E68C"},
	"Farm":   {"F5DEB3", "9ACD32", "DAA520", "FFB6C1", "F0E68C"},
}

var moodWords = map[string]string{
	"Calm":        "quiet and peaceful",
	"Happy":       "bright and cheerful",
	"Exciting":    "full of surprises",
	"Funny":       "silly and giggly",
	"Magical":     "shimmering with magic",
	"Educational": "full of things to learn",
}

var themeEndings = map[string]string{
	"Bedtime":      "snuggled under a soft blanket and drifted off to sleep",
	"Nap Time":     "curled up for a cozy afternoon nap",
	"Bath Time":    "splashed in warm, bubbly bath water",
	"Good Morning": "stretched, yawned and said good morning to the sun",
	"Road Trip":    "waved goodbye from the back seat, ready for the next trip",
	"Adventure":    "dreamed about the next big adventure",
}

func settingColor(setting string, page int) string {
	palette, ok := settingPalette[setting]
	if !ok {
		palette = settingPalette["Forest"]
	}
	return palette[(page-1)%len(palette)]
}

func characterName(c string) string {
	if name, ok := characterNames[c]; ok {
		return name
	}
	return c
}

func lookup(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func (b *Builtin) Generate(ctx context.Context, prompt story.Prompt) (*Result, error) {
	if !prompt.Complete() {
		return nil, fmt.Errorf("%w: prompt is incomplete", story.ErrIncompleteSelection)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", story.ErrGeneration, err)
	}

	hero := characterName(prompt.Characters[0])
	var friends []string
	for _, c := range prompt.Characters[1:] {
		friends = append(friends, characterName(c))
	}
	place := lookup(settingPlaces, prompt.Setting, "a faraway place")
	mood := lookup(moodWords, prompt.Mood, "full of wonder")
	ending := lookup(themeEndings, prompt.Theme, "smiled, happy and safe")

	company := "new friends"
	if len(friends) > 0 {
		company = joinNames(friends)
	}

	opening := fmt.Sprintf("Once upon a time, in %s, there lived %s. Every day there was %s.", place, hero, mood)
	middles := []string{
		fmt.Sprintf("One morning, %s set off to explore and met %s along the way.", hero, company),
		fmt.Sprintf("Together they found a hidden path that led somewhere %s.", mood),
		fmt.Sprintf("Suddenly they heard a soft cry. Someone small needed help, and %s knew just what to do.", hero),
		fmt.Sprintf("With kind hearts and careful steps, %s helped their new friend find the way home.", hero),
		fmt.Sprintf("Everyone laughed and played until the sky over %s turned golden.", place),
	}
	closing := fmt.Sprintf("At the end of the day, %s %s. The End.", hero, ending)

	texts := []string{opening}
	for i := 0; len(texts) < b.pages-1; i++ {
		texts = append(texts, middles[i%len(middles)])
	}
	if b.pages > 1 {
		texts = append(texts, closing)
	} else {
		texts[0] = opening + " " + closing
	}

	captions := []string{prompt.Setting, "Setting Off", "Hidden Path", "A Friend in Need", "Helping Hands", "Golden Sky"}
	result := &Result{Title: builtinTitle(prompt)}
	for i, text := range texts {
		number := i + 1
		if number < len(texts) {
			text += " Turn the page."
		}
		caption := captions[i%len(captions)]
		if number == len(texts) {
			caption = "Happy Ending"
		}
		result.Pages = append(result.Pages, story.Page{
			Number:       number,
			Text:         text,
			Illustration: illustrationRef(caption, prompt.Setting, number),
		})
	}
	return result, nil
}

func builtinTitle(p story.Prompt) string {
	name := characterName(p.Characters[0])
	if i := strings.Index(name, " the "); i > 0 {
		name = name[:i]
	}
	if strings.HasPrefix(name, "the ") {
		name = "The " + p.Characters[0]
	}
	possessive := name + "'s"
	if strings.HasSuffix(name, "s") {
		possessive = name + "'"
	}
	if p.Theme == "Adventure" {
		return possessive + " Adventure"
	}
	return fmt.Sprintf("%s %s Story", possessive, p.Theme)
}
