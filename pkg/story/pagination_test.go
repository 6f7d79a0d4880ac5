package story

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPages(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{Number: i + 1, Text: fmt.Sprintf("page %d", i+1)}
	}
	return pages
}

func TestNewPaginationRejectsEmpty(t *testing.T) {
	_, err := NewPagination(nil)
	assert.True(t, errors.Is(err, ErrEmptyStory))
}

func TestPaginationFivePages(t *testing.T) {
	p, err := NewPagination(testPages(5))
	require.NoError(t, err)

	assert.Equal(t, 0, p.Index())
	assert.True(t, p.IsFirst())
	assert.False(t, p.IsLast())

	for i := 0; i < 4; i++ {
		p.Next()
	}
	assert.Equal(t, 4, p.Index())
	assert.True(t, p.IsLast())
	assert.Equal(t, 5, p.Current().Number)

	p.Next()
	assert.Equal(t, 4, p.Index())
	assert.True(t, p.IsLast())
}

func TestPaginationPreviousAtFirstIsNoop(t *testing.T) {
	p, err := NewPagination(testPages(3))
	require.NoError(t, err)

	p.Previous()
	assert.Equal(t, 0, p.Index())
	assert.True(t, p.IsFirst())
}

func TestPaginationRoundTrips(t *testing.T) {
	const n = 6
	for start := 0; start < n; start++ {
		p, err := NewPagination(testPages(n))
		require.NoError(t, err)
		for i := 0; i < start; i++ {
			p.Next()
		}

		if !p.IsLast() {
			p.Next()
			p.Previous()
			assert.Equal(t, start, p.Index(), "next/previous from %d", start)
		}
		if !p.IsFirst() {
			p.Previous()
			p.Next()
			assert.Equal(t, start, p.Index(), "previous/next from %d", start)
		}
	}
}

func TestPaginationSinglePage(t *testing.T) {
	p, err := NewPagination(testPages(1))
	require.NoError(t, err)

	assert.True(t, p.IsFirst())
	assert.True(t, p.IsLast())
	p.Next()
	p.Previous()
	assert.Equal(t, 0, p.Index())
	assert.Equal(t, 1, p.Len())
}

func TestPaginationCopiesPages(t *testing.T) {
	pages := testPages(2)
	p, err := NewPagination(pages)
	require.NoError(t, err)

	pages[0].Text = "changed"
	assert.Equal(t, "page 1", p.Current().Text)
}
