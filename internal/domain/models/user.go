package models

// SessionUser is the ambient session identity, consumed (never produced)
// by the booking flow.
type SessionUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u SessionUser) IsAdmin() bool {
	return u.Role == "admin"
}
