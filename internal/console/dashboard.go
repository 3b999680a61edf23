// Package console holds the back-office client: the dashboard state, the
// admin API client and the terminal UI built on them.
package console

import (
	"github.com/saltandserenity/booking/internal/entity"
)

type Tab int

const (
	TabDashboard Tab = iota
	TabUsers
)

func (t Tab) String() string {
	if t == TabUsers {
		return "Users"
	}
	return "Dashboard"
}

type RequestKind string

const (
	KindRecords RequestKind = "records"
	KindEvents  RequestKind = "events"
	KindUsers   RequestKind = "users"
)

// Request is one fetch issued by the dashboard. Seq orders requests of the
// same slot; only the newest result for a slot is applied.
type Request struct {
	Seq    uint64
	Kind   RequestKind
	Page   int
	LeadID string
}

func (r Request) slot() string {
	if r.Kind == KindEvents {
		return string(r.Kind) + ":" + r.LeadID
	}
	return string(r.Kind)
}

// Result answers a Request. Only the fields for its Kind are set.
type Result struct {
	Request   Request
	Records   *RecordsPage
	Referrers []entity.Referrer
	Events    []Event
	Users     []entity.AdminUser
	Err       error
}

// Dashboard is the state behind the admin views. It never performs I/O: it
// issues Requests and applies Results, which keeps every transition
// testable without a server.
type Dashboard struct {
	tab        Tab
	page       int
	totalPages int
	total      int
	records    []entity.Lead
	referrers  []entity.Referrer
	events     map[string][]Event
	users      []entity.AdminUser
	err        error

	seq     uint64
	pending map[string]uint64
}

func NewDashboard() *Dashboard {
	return &Dashboard{
		page:       1,
		totalPages: 1,
		events:     make(map[string][]Event),
		pending:    make(map[string]uint64),
	}
}

func (d *Dashboard) issue(kind RequestKind, page int, leadID string) Request {
	d.seq++
	req := Request{Seq: d.seq, Kind: kind, Page: page, LeadID: leadID}
	d.pending[req.slot()] = req.Seq
	return req
}

// Refresh re-fetches whatever the active tab shows.
func (d *Dashboard) Refresh() Request {
	if d.tab == TabUsers {
		return d.issue(KindUsers, 0, "")
	}
	return d.issue(KindRecords, d.page, "")
}

func (d *Dashboard) SwitchTab(t Tab) Request {
	d.tab = t
	d.err = nil
	return d.Refresh()
}

func (d *Dashboard) CanPrev() bool { return d.page > 1 }
func (d *Dashboard) CanNext() bool { return d.page < d.totalPages }

// GoToPage issues a records fetch for p. Pages outside [1, totalPages] are
// refused and no request is issued. The current page only moves once the
// fetch succeeds, so a failed fetch leaves the page label on the records
// still shown.
func (d *Dashboard) GoToPage(p int) (Request, bool) {
	if p < 1 || p > d.totalPages {
		return Request{}, false
	}
	return d.issue(KindRecords, p, ""), true
}

func (d *Dashboard) LoadEvents(leadID string) Request {
	return d.issue(KindEvents, 0, leadID)
}

// EventSaved drops the cached events of leadID and re-fetches them.
func (d *Dashboard) EventSaved(leadID string) Request {
	delete(d.events, leadID)
	return d.LoadEvents(leadID)
}

// UsersChanged re-fetches the user list after an invite or delete.
func (d *Dashboard) UsersChanged() Request {
	return d.issue(KindUsers, 0, "")
}

// Fail records an error from an action that is not a tracked fetch, such
// as a failed invite. Loaded data stays.
func (d *Dashboard) Fail(err error) {
	d.err = err
}

// Apply folds res into the state and reports whether it was current.
// Results superseded by a newer request for the same slot are dropped.
func (d *Dashboard) Apply(res Result) bool {
	slot := res.Request.slot()
	if latest, ok := d.pending[slot]; !ok || latest != res.Request.Seq {
		return false
	}
	delete(d.pending, slot)

	if res.Err != nil {
		d.err = res.Err
		return true
	}
	d.err = nil

	switch res.Request.Kind {
	case KindRecords:
		if res.Records != nil {
			d.records = res.Records.Records
			d.total = res.Records.Total
			d.totalPages = max(res.Records.TotalPages, 1)
			d.page = res.Records.Page
		}
		d.referrers = res.Referrers
	case KindEvents:
		d.events[res.Request.LeadID] = res.Events
	case KindUsers:
		d.users = res.Users
	}
	return true
}

func (d *Dashboard) Tab() Tab { return d.tab }
func (d *Dashboard) Page() int { return d.page }
func (d *Dashboard) TotalPages() int { return d.totalPages }
func (d *Dashboard) Total() int { return d.total }
func (d *Dashboard) Loading() bool { return len(d.pending) > 0 }
func (d *Dashboard) Records() []entity.Lead { return d.records }
func (d *Dashboard) Referrers() []entity.Referrer { return d.referrers }
func (d *Dashboard) Users() []entity.AdminUser { return d.users }
func (d *Dashboard) Err() error { return d.err }

// Events returns the cached events of leadID and whether they are loaded.
func (d *Dashboard) Events(leadID string) ([]Event, bool) {
	ev, ok := d.events[leadID]
	return ev, ok
}
