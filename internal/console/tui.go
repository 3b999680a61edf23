package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2F4F4F"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC3333"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CC8800"))
	mutedStyle     = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E8B57"))
)

type resultMsg Result

// writeMsg reports a finished create, update, invite or delete.
type writeMsg struct {
	kind   RequestKind
	leadID string
	notice string
	err    error
}

// Model is the bubbletea program for the back office.
type Model struct {
	dash    *Dashboard
	backend Backend
	ctx     context.Context
	cursor  int
	open    string
	form    *form
	// confirmDelete holds the user id awaiting a y/n answer.
	confirmDelete string
	notice        string
}

func NewModel(ctx context.Context, backend Backend) Model {
	return Model{dash: NewDashboard(), backend: backend, ctx: ctx}
}

func (m Model) Dashboard() *Dashboard { return m.dash }

func (m Model) fetch(req Request) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(Fetch(m.ctx, m.backend, req))
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.dash.Refresh())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.dash.Apply(Result(msg))
		m.clampCursor()
		return m, nil

	case writeMsg:
		if msg.err != nil {
			m.dash.Fail(msg.err)
			return m, nil
		}
		m.notice = msg.notice
		if msg.kind == KindUsers {
			return m, m.fetch(m.dash.UsersChanged())
		}
		return m, m.fetch(m.dash.EventSaved(msg.leadID))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.confirmDelete != "" {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		next := TabUsers
		if m.dash.Tab() == TabUsers {
			next = TabDashboard
		}
		m.open, m.cursor, m.notice = "", 0, ""
		return m, m.fetch(m.dash.SwitchTab(next))
	case "left", "h":
		if req, ok := m.dash.GoToPage(m.dash.Page() - 1); ok {
			m.cursor, m.open = 0, ""
			return m, m.fetch(req)
		}
	case "right", "l":
		if req, ok := m.dash.GoToPage(m.dash.Page() + 1); ok {
			m.cursor, m.open = 0, ""
			return m, m.fetch(req)
		}
	case "r":
		cmds := []tea.Cmd{m.fetch(m.dash.Refresh())}
		if m.open != "" {
			cmds = append(cmds, m.fetch(m.dash.EventSaved(m.open)))
		}
		return m, tea.Batch(cmds...)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case "enter":
		if m.dash.Tab() == TabDashboard && m.cursor < len(m.dash.Records()) {
			m.open = m.dash.Records()[m.cursor].ID
			return m, m.fetch(m.dash.LoadEvents(m.open))
		}
	case "n":
		if m.dash.Tab() == TabDashboard && m.open != "" {
			m.form = newForm(actionCreateEvent, "New event", "Type of event", "Event date (YYYY-MM-DD)", "Adults", "Children")
		}
	case "e":
		if events, ok := m.dash.Events(m.open); ok && len(events) > 0 {
			m.form = newForm(actionUpdateEvent, "Update event",
				fmt.Sprintf("Event # (1-%d)", len(events)), "Status (New/Scheduled, blank keeps)", "Notes (blank keeps)")
		}
	case "i":
		if m.dash.Tab() == TabUsers {
			m.form = newForm(actionInviteUser, "Invite admin", "Email")
		}
	case "d":
		if users := m.dash.Users(); m.dash.Tab() == TabUsers && m.cursor < len(users) {
			m.confirmDelete = users[m.cursor].UserID
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		return m, nil
	case tea.KeyEnter:
		if !m.form.next() {
			return m, nil
		}
		f := m.form
		m.form = nil
		m.notice = ""
		return m, m.submit(f)
	}
	return m, m.form.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmDelete
	m.confirmDelete = ""
	if msg.String() != "y" {
		return m, nil
	}
	backend, ctx := m.backend, m.ctx
	return m, func() tea.Msg {
		err := backend.DeleteUser(ctx, id)
		return writeMsg{kind: KindUsers, err: err}
	}
}

// submit turns a completed form into the API call. Input the API would
// reject anyway is reported without a round trip.
func (m Model) submit(f *form) tea.Cmd {
	backend, ctx, leadID := m.backend, m.ctx, m.open

	switch f.action {
	case actionCreateEvent:
		adults, err1 := strconv.Atoi(f.values[2])
		children, err2 := strconv.Atoi(f.values[3])
		if err := errors.Join(err1, err2); err != nil {
			return m.failLocally("adults and children must be whole numbers")
		}
		in := EventInput{
			TypeOfEvent:      f.values[0],
			DateOfEvent:      f.values[1],
			NumberOfAdults:   adults,
			NumberOfChildren: children,
			LeadID:           leadID,
		}
		return func() tea.Msg {
			_, err := backend.CreateEvent(ctx, in)
			return writeMsg{kind: KindEvents, leadID: leadID, err: err}
		}

	case actionUpdateEvent:
		events, _ := m.dash.Events(leadID)
		n, err := strconv.Atoi(f.values[0])
		if err != nil || n < 1 || n > len(events) {
			return m.failLocally(fmt.Sprintf("event # must be between 1 and %d", len(events)))
		}
		var patch EventPatch
		if f.values[1] != "" {
			patch.Status = &f.values[1]
		}
		if f.values[2] != "" {
			patch.Notes = &f.values[2]
		}
		if patch == (EventPatch{}) {
			return m.failLocally("nothing to update")
		}
		id := events[n-1].ID
		return func() tea.Msg {
			_, err := backend.UpdateEvent(ctx, id, patch)
			return writeMsg{kind: KindEvents, leadID: leadID, err: err}
		}

	case actionInviteUser:
		email := f.values[0]
		return func() tea.Msg {
			res, err := backend.InviteUser(ctx, email)
			if err != nil {
				return writeMsg{kind: KindUsers, err: err}
			}
			notice := "invited " + res.User.Email
			if res.EmailWarning != "" {
				notice += " (" + res.EmailWarning + ")"
			}
			return writeMsg{kind: KindUsers, notice: notice}
		}
	}
	return nil
}

func (m Model) failLocally(msg string) tea.Cmd {
	return func() tea.Msg { return writeMsg{err: errors.New(msg)} }
}

func (m Model) rows() int {
	if m.dash.Tab() == TabUsers {
		return len(m.dash.Users())
	}
	return len(m.dash.Records())
}

func (m *Model) clampCursor() {
	if n := m.rows(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Salt & Serenity admin"))
	b.WriteString("\n")
	for _, t := range []Tab{TabDashboard, TabUsers} {
		if t == m.dash.Tab() {
			b.WriteString(activeTabStyle.Render(t.String()))
		} else {
			b.WriteString(tabStyle.Render(t.String()))
		}
	}
	b.WriteString("\n\n")

	if m.dash.Loading() {
		b.WriteString(mutedStyle.Render("Loading…"))
		b.WriteString("\n")
	}
	if err := m.dash.Err(); err != nil {
		b.WriteString(errorStyle.Render("Error: " + err.Error()))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	if m.dash.Tab() == TabUsers {
		m.viewUsers(&b)
	} else {
		m.viewRecords(&b)
	}

	b.WriteString("\n")
	switch {
	case m.form != nil:
		b.WriteString(m.form.view())
	case m.confirmDelete != "":
		b.WriteString(errorStyle.Render("Delete " + m.confirmDelete + "? (y/n)"))
	case m.dash.Tab() == TabUsers:
		b.WriteString(mutedStyle.Render("tab switch view • ↑/↓ select • i invite • d delete • r refresh • q quit"))
	default:
		b.WriteString(mutedStyle.Render("tab switch view • ←/→ page • ↑/↓ select • enter events • n new event • e edit event • r refresh • q quit"))
	}
	return b.String()
}

func (m Model) viewRecords(b *strings.Builder) {
	for i, lead := range m.dash.Records() {
		line := fmt.Sprintf("%-20s %-28s %-10s %s", truncate(lead.FullName, 20), truncate(lead.Email, 28), lead.Status, lead.CreatedAt.Format("2006-01-02"))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if lead.ID == m.open {
			m.viewEvents(b, lead.ID)
		}
	}

	prev, next := " ", " "
	if m.dash.CanPrev() {
		prev = "←"
	}
	if m.dash.CanNext() {
		next = "→"
	}
	fmt.Fprintf(b, "\n%s Page %d of %d (%d leads) %s\n", prev, m.dash.Page(), m.dash.TotalPages(), m.dash.Total(), next)

	if refs := m.dash.Referrers(); len(refs) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Referrers"))
		b.WriteString("\n")
		for _, r := range refs {
			fmt.Fprintf(b, "  %-20s %-28s %d referrals\n", truncate(r.FullName, 20), truncate(r.Email, 28), r.ReferralsCount)
		}
	}
}

func (m Model) viewEvents(b *strings.Builder, leadID string) {
	events, ok := m.dash.Events(leadID)
	if !ok {
		b.WriteString(mutedStyle.Render("      loading events…"))
		b.WriteString("\n")
		return
	}
	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("      no events"))
		b.WriteString("\n")
		return
	}
	for i, e := range events {
		fmt.Fprintf(b, "    %d. %-22s %-10s %-10s adults %d children %d\n",
			i+1, e.Fields.TypeOfEvent, dateOnly(e.Fields.EventDate), e.Fields.Status, e.Fields.Adults, e.Fields.Children)
	}
}

func (m Model) viewUsers(b *strings.Builder) {
	for i, u := range m.dash.Users() {
		verified := "unverified"
		if u.EmailVerified {
			verified = "verified"
		}
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("2006-01-02")
		}
		line := fmt.Sprintf("%-30s %-10s last login %s", truncate(u.Email, 30), verified, lastLogin)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func dateOnly(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
