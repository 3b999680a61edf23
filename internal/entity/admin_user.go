package entity

import "time"

type AdminUser struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	Name          string     `json:"name,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}
