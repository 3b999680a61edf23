package recordstore

import (
	"context"

	"github.com/saltandserenity/booking/internal/entity"
)

type LeadRepository struct {
	Client *Client
	Table  string
}

func NewLeadRepository(c *Client, table string) *LeadRepository {
	return &LeadRepository{Client: c, Table: table}
}

// Page lists every lead newest first and cuts the requested window. The store
// has no count endpoint, so the total comes from the full listing.
func (r *LeadRepository) Page(ctx context.Context, offset, limit int) (entity.LeadPage, error) {
	recs, err := r.Client.ListAll(ctx, r.Table, ListOptions{
		Sort: []SortField{{Field: fieldCreatedAt, Desc: true}},
	})
	if err != nil {
		return entity.LeadPage{}, err
	}

	page := entity.LeadPage{Total: len(recs), Leads: []entity.Lead{}}
	if offset < 0 || offset >= len(recs) {
		return page, nil
	}
	end := offset + limit
	if end > len(recs) {
		end = len(recs)
	}
	for _, rec := range recs[offset:end] {
		page.Leads = append(page.Leads, leadFromRecord(rec))
	}
	return page, nil
}

func (r *LeadRepository) Get(ctx context.Context, id string) (*entity.Lead, error) {
	rec, err := r.Client.Get(ctx, r.Table, id)
	if err != nil {
		return nil, err
	}
	lead := leadFromRecord(*rec)
	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	rec, err := r.Client.Create(ctx, r.Table, leadToFields(lead))
	if err != nil {
		return err
	}
	*lead = leadFromRecord(*rec)
	return nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	rec, err := r.Client.Update(ctx, r.Table, id, map[string]any{fieldStatus: string(status)})
	if err != nil {
		return nil, err
	}
	lead := leadFromRecord(*rec)
	return &lead, nil
}

type ReferrerRepository struct {
	Client *Client
	Table  string
}

func NewReferrerRepository(c *Client, table string) *ReferrerRepository {
	return &ReferrerRepository{Client: c, Table: table}
}

func (r *ReferrerRepository) List(ctx context.Context) ([]entity.Referrer, error) {
	recs, err := r.Client.ListAll(ctx, r.Table, ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]entity.Referrer, 0, len(recs))
	for _, rec := range recs {
		out = append(out, referrerFromRecord(rec))
	}
	return out, nil
}

func (r *ReferrerRepository) Get(ctx context.Context, id string) (*entity.Referrer, error) {
	rec, err := r.Client.Get(ctx, r.Table, id)
	if err != nil {
		return nil, err
	}
	ref := referrerFromRecord(*rec)
	return &ref, nil
}

func (r *ReferrerRepository) Create(ctx context.Context, ref *entity.Referrer) error {
	rec, err := r.Client.Create(ctx, r.Table, referrerToFields(ref))
	if err != nil {
		return err
	}
	*ref = referrerFromRecord(*rec)
	return nil
}

type EventRepository struct {
	Client *Client
	Table  string
}

func NewEventRepository(c *Client, table string) *EventRepository {
	return &EventRepository{Client: c, Table: table}
}

// List returns events newest first, restricted to one lead when leadID is set.
func (r *EventRepository) List(ctx context.Context, leadID string) ([]entity.Event, error) {
	opts := ListOptions{Sort: []SortField{{Field: fieldEventDate, Desc: true}}}
	if leadID != "" {
		opts.Filter = leadFilter(leadID)
	}
	recs, err := r.Client.ListAll(ctx, r.Table, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, eventFromRecord(rec))
	}
	return out, nil
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	rec, err := r.Client.Create(ctx, r.Table, eventToFields(e))
	if err != nil {
		return err
	}
	*e = eventFromRecord(*rec)
	return nil
}

func (r *EventRepository) Update(ctx context.Context, id string, patch entity.EventPatch) (*entity.Event, error) {
	rec, err := r.Client.Update(ctx, r.Table, id, eventPatchToFields(patch))
	if err != nil {
		return nil, err
	}
	ev := eventFromRecord(*rec)
	return &ev, nil
}
