package models

import "time"

// UserRole represents the roles a portal account can hold.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleLecturer  UserRole = "lecturer"
	RolePrincipal UserRole = "principal"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleLecturer, RolePrincipal:
		return true
	default:
		return false
	}
}

// IsReviewer reports whether the role may act on student submissions.
func (r UserRole) IsReviewer() bool {
	return r == RoleLecturer || r == RolePrincipal
}

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         UserRole  `db:"role" json:"role"`
	StudentID    *string   `db:"student_id" json:"studentId"`
	EmployeeID   *string   `db:"employee_id" json:"employeeId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
