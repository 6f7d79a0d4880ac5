package components

import (
	"github.com/kerbaras/storytime/pkg/app/styles"
)

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// Notice is an inline, non-blocking banner. Screens clear it on the next
// key press.
type Notice struct {
	Text  string
	Level NoticeLevel
}

func (n *Notice) Info(text string)    { n.Text, n.Level = text, NoticeInfo }
func (n *Notice) Success(text string) { n.Text, n.Level = text, NoticeSuccess }

func (n *Notice) Error(err error) {
	if err == nil {
		n.Clear()
		return
	}
	n.Text, n.Level = err.Error(), NoticeError
}

func (n *Notice) Clear() { n.Text = "" }

func (n *Notice) Active() bool { return n.Text != "" }

func (n *Notice) View() string {
	switch {
	case n.Text == "":
		return ""
	case n.Level == NoticeError:
		return styles.StatusError.Render("✗ " + n.Text)
	case n.Level == NoticeSuccess:
		return styles.StatusCompleted.Render("✓ " + n.Text)
	}
	return styles.StatusWorking.Render(n.Text)
}
