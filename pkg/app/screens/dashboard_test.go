package screens

import (
	"context"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerbaras/storytime/pkg/story"
)

func newDashboard(svc *mockService) *DashboardScreen {
	d := NewDashboardScreen(svc, nopLogger())
	d.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

// fillForm picks Bedtime, Calm, Forest and Dog through the keyboard.
func fillForm(d *DashboardScreen) {
	for range 4 {
		d.Update(keyPress("space"))
		d.Update(keyPress("down"))
	}
}

func TestDashboardFormSelection(t *testing.T) {
	d := newDashboard(&mockService{})

	fillForm(d)
	assert.Equal(t, story.Prompt{Theme: "Bedtime", Mood: "Calm", Setting: "Forest", Characters: []string{"Dog"}}, d.Selection().Prompt())
	assert.True(t, d.Selection().IsComplete())

	// back to characters, add Cat then remove Dog
	d.Update(keyPress("up"))
	d.Update(keyPress("right"))
	d.Update(keyPress("space"))
	d.Update(keyPress("left"))
	d.Update(keyPress("space"))
	assert.Equal(t, []string{"Cat"}, d.Selection().Prompt().Characters)

	// replacing a single choice
	d.Update(keyPress("up"))
	d.Update(keyPress("right"))
	d.Update(keyPress("space"))
	assert.Equal(t, "House", d.Selection().Prompt().Setting)

	d.Update(keyPress("x"))
	assert.False(t, d.Selection().IsComplete())
}

func TestDashboardSubmitIncomplete(t *testing.T) {
	called := false
	d := newDashboard(&mockService{generateFunc: func(context.Context, story.Prompt) (*story.Story, error) {
		called = true
		return nil, nil
	}})

	d.Update(keyPress("space")) // theme only
	_, cmd := d.Update(keyPress("g"))

	assert.Nil(t, cmd)
	assert.False(t, d.Generating())
	assert.False(t, called)
	assert.Contains(t, d.View(), "incomplete selection")
	assert.Contains(t, d.View(), "mood, setting, characters")

	// notices clear on the next key press
	d.Update(keyPress("right"))
	assert.NotContains(t, d.View(), "incomplete selection")
}

func TestDashboardGenerate(t *testing.T) {
	var got story.Prompt
	d := newDashboard(&mockService{generateFunc: func(ctx context.Context, p story.Prompt) (*story.Story, error) {
		got = p
		return testStory(), nil
	}})
	fillForm(d)

	_, cmd := d.Update(keyPress("enter")) // focus is on Create Story
	require.NotNil(t, cmd)
	assert.True(t, d.Generating())
	assert.Contains(t, d.View(), "We're creating your adventure with Dog in a calm forest setting...")

	// keys other than esc are ignored while generating
	d.Update(keyPress("x"))
	assert.True(t, d.Selection().IsComplete())

	generated, ok := findMsg[generatedMsg](run(t, cmd))
	require.True(t, ok)
	assert.Equal(t, "Dog", got.Characters[0])

	_, cmd = d.Update(generated)
	assert.False(t, d.Generating())
	sw, ok := findMsg[SwitchScreenMsg](run(t, cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenPlayer, sw.Screen)
	assert.Equal(t, "story-1", sw.Data.(*story.Story).ID)
}

func TestDashboardGenerateError(t *testing.T) {
	d := newDashboard(&mockService{generateFunc: func(context.Context, story.Prompt) (*story.Story, error) {
		return nil, story.ErrGeneration
	}})
	fillForm(d)

	_, cmd := d.Update(keyPress("g"))
	generated, ok := findMsg[generatedMsg](run(t, cmd))
	require.True(t, ok)

	_, cmd = d.Update(generated)
	assert.Nil(t, cmd)
	assert.False(t, d.Generating())
	assert.Contains(t, d.View(), "story generation failed")
	assert.True(t, d.Selection().IsComplete(), "selection survives a failed generation")
}

func TestDashboardDropsStaleResults(t *testing.T) {
	d := newDashboard(&mockService{})
	fillForm(d)

	_, first := d.Update(keyPress("g"))
	stale, _ := findMsg[generatedMsg](run(t, first))

	// cancelling and resubmitting supersedes the first request
	d.Update(keyPress("esc"))
	assert.False(t, d.Generating())
	assert.Contains(t, d.View(), "cancelled")

	_, second := d.Update(keyPress("g"))
	current, _ := findMsg[generatedMsg](run(t, second))

	_, cmd := d.Update(stale)
	assert.Nil(t, cmd)
	assert.True(t, d.Generating(), "stale result must not finish the current request")

	_, cmd = d.Update(current)
	_, ok := findMsg[SwitchScreenMsg](run(t, cmd))
	assert.True(t, ok)
}

func TestDashboardSavedStories(t *testing.T) {
	saved := []*story.Story{testStory(), testStory()}
	saved[1].ID, saved[1].Title, saved[1].Rating = "story-2", "Pip Flies Home", 5

	var deleted string
	d := newDashboard(&mockService{
		storiesFunc: func(context.Context) ([]*story.Story, error) { return saved, nil },
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	_, cmd := d.Update(keyPress("tab"))
	for _, msg := range run(t, cmd) {
		d.Update(msg)
	}
	view := d.View()
	assert.Contains(t, view, "Max's Bedtime Story")
	assert.Contains(t, view, "Pip Flies Home")

	d.Update(keyPress("down"))
	_, cmd = d.Update(keyPress("enter"))
	sw, ok := findMsg[SwitchScreenMsg](run(t, cmd))
	require.True(t, ok)
	assert.Equal(t, SwitchScreenMsg{Screen: ScreenPlayer, Data: "story-2"}, sw)

	_, cmd = d.Update(keyPress("d"))
	msgs := run(t, cmd)
	assert.Equal(t, "story-2", deleted)
	_, cmd = d.Update(msgs[0])
	assert.NotNil(t, cmd, "list reloads after delete")
	assert.Contains(t, d.View(), `Deleted "Pip Flies Home"`)
}

func TestDashboardSavedStoriesError(t *testing.T) {
	d := newDashboard(&mockService{storiesFunc: func(context.Context) ([]*story.Story, error) {
		return nil, story.ErrPersistence
	}})

	d.Update(d.loadStories())
	assert.Contains(t, d.View(), "story storage failed")
}

func TestDashboardAccount(t *testing.T) {
	rated := testStory()
	rated.Rating = 4
	d := newDashboard(&mockService{storiesFunc: func(context.Context) ([]*story.Story, error) {
		return []*story.Story{rated, testStory()}, nil
	}})

	d.Update(keyPress("tab"))
	_, cmd := d.Update(keyPress("tab"))
	for _, msg := range run(t, cmd) {
		d.Update(msg)
	}

	view := d.View()
	assert.Contains(t, view, "User: sam")
	assert.Contains(t, view, "Story generator: builtin")
	assert.Contains(t, view, "Saved stories: 2")
	assert.Contains(t, view, "4.0 from 1 rated")
}

func TestDashboardOpenReset(t *testing.T) {
	d := newDashboard(&mockService{})
	fillForm(d)

	d.Open(DashboardOptions{Tab: TabGenerate})
	assert.True(t, d.Selection().IsComplete(), "plain open keeps the selection")

	d.Open(DashboardOptions{Tab: TabGenerate, Reset: true})
	assert.Equal(t, story.Prompt{}, d.Selection().Prompt())
}

func TestDashboardNavigation(t *testing.T) {
	d := newDashboard(&mockService{})

	_, cmd := d.Update(keyPress("esc"))
	sw, ok := findMsg[SwitchScreenMsg](run(t, cmd))
	require.True(t, ok)
	assert.Equal(t, ScreenLanding, sw.Screen)

	_, cmd = d.Update(keyPress("q"))
	_, ok = findMsg[tea.QuitMsg](run(t, cmd))
	assert.True(t, ok)
}

func TestGeneratingNotice(t *testing.T) {
	p := story.Prompt{Mood: "Magical", Setting: "Space", Characters: []string{"Dog", "Cat"}}
	assert.Equal(t, "We're creating your adventure with Dog, Cat in a magical space setting...", GeneratingNotice(p))
}

func TestDashboardGeneratingFollowsTracker(t *testing.T) {
	d := newDashboard(&mockService{})
	fillForm(d)

	_, cmd := d.Update(keyPress("g"))
	assert.True(t, d.tracker.InFlight())
	assert.True(t, d.Generating())

	generated, ok := findMsg[generatedMsg](run(t, cmd))
	require.True(t, ok)
	d.Update(generated)
	assert.False(t, d.tracker.InFlight())
	assert.False(t, d.Generating())

	// the spinner stops once nothing is in flight
	_, cmd = d.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}
