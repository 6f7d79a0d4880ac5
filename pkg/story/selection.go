package story

import (
	"fmt"
	"slices"
	"strings"
)

// Selection is the dashboard form state: one value each for theme, mood and
// setting, and an ordered set of characters.
type Selection struct {
	options Options
	prompt  Prompt
}

func NewSelection(opts Options) *Selection {
	return &Selection{options: opts}
}

func (s *Selection) Options() Options {
	return s.options
}

// SetSingle replaces the value of a single-choice field. Values outside the
// field's option set and the characters field are ignored.
func (s *Selection) SetSingle(f Field, value string) {
	if f == FieldCharacters || !s.options.Contains(f, value) {
		return
	}
	switch f {
	case FieldTheme:
		s.prompt.Theme = value
	case FieldMood:
		s.prompt.Mood = value
	case FieldSetting:
		s.prompt.Setting = value
	}
}

// ToggleCharacter removes value from the characters if present, otherwise
// appends it. The order of the remaining characters is preserved.
func (s *Selection) ToggleCharacter(value string) {
	if !s.options.Contains(FieldCharacters, value) {
		return
	}
	if i := slices.Index(s.prompt.Characters, value); i >= 0 {
		s.prompt.Characters = slices.Delete(s.prompt.Characters, i, i+1)
		return
	}
	s.prompt.Characters = append(s.prompt.Characters, value)
}

// Choose applies value to f with the semantics of the field kind.
func (s *Selection) Choose(f Field, value string) {
	if f == FieldCharacters {
		s.ToggleCharacter(value)
		return
	}
	s.SetSingle(f, value)
}

// Selected reports whether value is currently chosen for f.
func (s *Selection) Selected(f Field, value string) bool {
	switch f {
	case FieldTheme:
		return s.prompt.Theme == value
	case FieldMood:
		return s.prompt.Mood == value
	case FieldSetting:
		return s.prompt.Setting == value
	case FieldCharacters:
		return slices.Contains(s.prompt.Characters, value)
	}
	return false
}

func (s *Selection) IsComplete() bool {
	return s.prompt.Complete()
}

// Missing lists the fields that still need a choice.
func (s *Selection) Missing() []Field {
	var missing []Field
	if s.prompt.Theme == "" {
		missing = append(missing, FieldTheme)
	}
	if s.prompt.Mood == "" {
		missing = append(missing, FieldMood)
	}
	if s.prompt.Setting == "" {
		missing = append(missing, FieldSetting)
	}
	if len(s.prompt.Characters) == 0 {
		missing = append(missing, FieldCharacters)
	}
	return missing
}

// Validate returns ErrIncompleteSelection naming the missing fields.
func (s *Selection) Validate() error {
	missing := s.Missing()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, f := range missing {
		names[i] = f.String()
	}
	return fmt.Errorf("%w: choose a %s", ErrIncompleteSelection, strings.Join(names, ", "))
}

// Prompt returns a copy of the current choices.
func (s *Selection) Prompt() Prompt {
	return s.prompt.clone()
}

func (s *Selection) Reset() {
	s.prompt = Prompt{}
}
