package story

import "slices"

// Options holds the enumerated choices offered for each prompt field.
type Options struct {
	Themes     []string
	Moods      []string
	Settings   []string
	Characters []string
}

func DefaultOptions() Options {
	return Options{
		Themes:     []string{"Bedtime", "Nap Time", "Bath Time", "Good Morning", "Road Trip", "Adventure"},
		Moods:      []string{"Calm", "Happy", "Exciting", "Funny", "Magical", "Educational"},
		Settings:   []string{"Forest", "House", "Jungle", "Ocean", "City", "Space", "Castle", "Farm"},
		Characters: []string{"Dog", "Cat", "Bunny", "Elephant", "Boy", "Girl", "Parents", "Firefighters", "Dino", "Bird"},
	}
}

// Field names a prompt field.
type Field int

const (
	FieldTheme Field = iota
	FieldMood
	FieldSetting
	FieldCharacters
)

var fieldNames = [...]string{"theme", "mood", "setting", "characters"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Fields lists the prompt fields in form order.
func Fields() []Field {
	return []Field{FieldTheme, FieldMood, FieldSetting, FieldCharacters}
}

// For returns the option set of a field.
func (o Options) For(f Field) []string {
	switch f {
	case FieldTheme:
		return o.Themes
	case FieldMood:
		return o.Moods
	case FieldSetting:
		return o.Settings
	case FieldCharacters:
		return o.Characters
	}
	return nil
}

// Contains reports whether value is one of the options of f.
func (o Options) Contains(f Field, value string) bool {
	return slices.Contains(o.For(f), value)
}
