package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formAction int

const (
	actionCreateEvent formAction = iota
	actionUpdateEvent
	actionInviteUser
)

// form collects one value per label, a line at a time.
type form struct {
	action formAction
	title  string
	labels []string
	values []string
	input  textinput.Model
}

func newForm(action formAction, title string, labels ...string) *form {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()
	return &form{action: action, title: title, labels: labels, input: ti}
}

func (f *form) label() string { return f.labels[len(f.values)] }

// next stores the current line and reports whether every label has a value.
func (f *form) next() bool {
	f.values = append(f.values, strings.TrimSpace(f.input.Value()))
	f.input.Reset()
	return len(f.values) == len(f.labels)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n")
	for i, v := range f.values {
		b.WriteString(mutedStyle.Render(f.labels[i] + ": " + v))
		b.WriteString("\n")
	}
	b.WriteString(f.label() + ": " + f.input.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter next • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
