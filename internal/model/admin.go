package model

import "time"

// AdminUser is a staff account for the admin panel. Role is either
// admin (full access) or staff (door validation only).
type AdminUser struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// ResetDataRequest guards the destructive reset endpoint. Confirmation
// must be exactly "DELETE ALL DATA".
type ResetDataRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// AdminStats is the dashboard summary.
type AdminStats struct {
	Registrations map[RegistrationStatus]int `json:"registrations"`
	TicketsIssued int                        `json:"tickets_issued"`
	TicketsUsed   int                        `json:"tickets_used"`
	Revenue       int64                      `json:"revenue"`
}
