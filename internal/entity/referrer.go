package entity

import "context"

type Referrer struct {
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	ReferralsCount int    `json:"referralsCount"`
	Environment    string `json:"-"`
}

type ReferrerRepositoryInterface interface {
	List(ctx context.Context) ([]Referrer, error)
	Get(ctx context.Context, id string) (*Referrer, error)
	Create(ctx context.Context, r *Referrer) error
}
