package story

import "time"

// Prompt is the set of choices a story is generated from.
type Prompt struct {
	Theme      string
	Mood       string
	Setting    string
	Characters []string
}

// Complete reports whether every field of the prompt has been chosen.
func (p Prompt) Complete() bool {
	return p.Theme != "" && p.Mood != "" && p.Setting != "" && len(p.Characters) > 0
}

func (p Prompt) clone() Prompt {
	out := p
	out.Characters = append([]string(nil), p.Characters...)
	return out
}

// Page is a single illustrated page of a story. Number is 1-based.
type Page struct {
	Number       int
	Text         string
	Illustration string
}

type Story struct {
	ID             string
	UserID         string
	Title          string
	Prompt         Prompt
	Pages          []Page
	CreatedAt      time.Time
	Rating         int // 0 when unrated, otherwise 1..5
	AudioGenerated bool // false until audio narration exists
}

// Rated reports whether the story carries a rating.
func (s *Story) Rated() bool {
	return s.Rating >= MinRating && s.Rating <= MaxRating
}

const (
	MinRating = 1
	MaxRating = 5
)

// ValidateRating returns ErrValidation unless rating is within 1..5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5", Value: rating}
	}
	return nil
}
