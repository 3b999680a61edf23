package usecase

import "github.com/saltandserenity/booking/internal/entity"

type ContactInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferredDate"`
	ContactMethod string `json:"contactMethod"`
	Message       string `json:"message"`
	ReferrerID    string `json:"referrerId"`
}

type ContactOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	ReferrerID string `json:"referrerId,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

type ReferrerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ReferrerOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ReferralURL string `json:"referralUrl,omitempty"`
	Warning     string `json:"warning,omitempty"`
}

type RecordsOutput struct {
	Records    []entity.Lead `json:"records"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

type ReferrersOutput struct {
	Referrers []entity.Referrer `json:"referrers"`
}

type LeadStatusInput struct {
	Status string `json:"status"`
}

type CreateEventInput struct {
	TypeOfEvent      string `json:"typeOfEvent"`
	NumberOfAdults   int    `json:"numberOfAdults"`
	NumberOfChildren int    `json:"numberOfChildren"`
	DateOfEvent      string `json:"dateOfEvent"`
	Status           string `json:"status"`
	Notes            string `json:"notes"`
	FinancialNotes   string `json:"financialNotes"`
	LeadID           string `json:"leadId"`
}

// UpdateEventInput is a partial update. Absent keys decode to nil. LeadID
// is only decoded so that an attempt to change it can be rejected.
type UpdateEventInput struct {
	TypeOfEvent      *string `json:"typeOfEvent"`
	NumberOfAdults   *int    `json:"numberOfAdults"`
	NumberOfChildren *int    `json:"numberOfChildren"`
	DateOfEvent      *string `json:"dateOfEvent"`
	Status           *string `json:"status"`
	Notes            *string `json:"notes"`
	FinancialNotes   *string `json:"financialNotes"`
	LeadID           *string `json:"leadId"`
}

type InviteUserInput struct {
	Email string `json:"email"`
}

type InviteUserOutput struct {
	Success      bool             `json:"success"`
	User         entity.AdminUser `json:"user"`
	EmailWarning string           `json:"emailWarning,omitempty"`
}

type DeleteUserInput struct {
	UserID string `json:"user_id"`
}
