package mail

// TemplateData feeds every notification template. Each template reads the
// subset it needs.
type TemplateData struct {
	Name         string `json:"name,omitempty"`
	GuestName    string `json:"guestName,omitempty"`
	ReferrerName string `json:"referrerName,omitempty"`
	ReferralLink string `json:"referralLink,omitempty"`
	ResetLink    string `json:"resetLink,omitempty"`
	Year         int    `json:"year,omitempty"`
}

type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}
