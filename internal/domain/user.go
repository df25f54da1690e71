package domain

import "time"

// User represents the authenticated marketplace account as returned by the
// auth endpoints.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Locale       string     `json:"locale"`
	CreatedAt    time.Time  `json:"createdAt"`
	IsAdmin      bool       `json:"isAdmin,omitempty"`
	IsSuperAdmin bool       `json:"isSuperAdmin,omitempty"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}

// UserPatch is a partial update applied to the current user. Nil fields are
// left untouched.
type UserPatch struct {
	FullName *string
	Email    *string
	Phone    *string
	Locale   *string
}

// Apply shallow-merges the patch into a copy of the user.
func (p UserPatch) Apply(u User) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Locale != nil {
		u.Locale = *p.Locale
	}
	return u
}
