package components

import (
	"strings"

	"github.com/kerbaras/storytime/pkg/app/styles"
	"github.com/kerbaras/storytime/pkg/story"
)

// Stars renders a 1..5 rating; unrated stories show empty stars.
func Stars(rating int) string {
	rating = max(0, min(rating, story.MaxRating))
	return styles.StarStyle.Render(strings.Repeat("★", rating)) +
		styles.MutedStyle.Render(strings.Repeat("☆", story.MaxRating-rating))
}
