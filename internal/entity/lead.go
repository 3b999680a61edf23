package entity

import (
	"context"
	"time"
)

type Lead struct {
	ID                string        `json:"id"`
	FullName          string        `json:"fullName"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone,omitempty"`
	PreferredDate     string        `json:"preferredDate,omitempty"`
	ContactMethod     ContactMethod `json:"contactMethod,omitempty"`
	AdditionalDetails string        `json:"additionalDetails,omitempty"`
	Status            LeadStatus    `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
	ReferrerID        string        `json:"referrerId,omitempty"`
	Environment       string        `json:"-"`
}

// LeadPage is one window of leads ordered newest first, plus the total count
// across all pages.
type LeadPage struct {
	Leads []Lead
	Total int
}

type LeadRepositoryInterface interface {
	Page(ctx context.Context, offset, limit int) (LeadPage, error)
	Get(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id string, status LeadStatus) (*Lead, error)
}
