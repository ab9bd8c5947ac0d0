package models

import "github.com/golang-jwt/jwt/v5"

// SignupRequest registers a new account.
type SignupRequest struct {
	Email           string   `json:"email" validate:"required"`
	Password        string   `json:"password" validate:"required"`
	ConfirmPassword string   `json:"confirmPassword"`
	FullName        string   `json:"fullName" validate:"required"`
	Role            UserRole `json:"role" validate:"required"`
	StudentID       string   `json:"studentId"`
	EmployeeID      string   `json:"employeeId"`
}

// LoginRequest holds credentials and the portal the user signs in to.
type LoginRequest struct {
	Email    string   `json:"email" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role" validate:"required"`
}

// UserSummary describes the authenticated user in responses. The password
// hash never leaves the repository layer.
type UserSummary struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Role       UserRole `json:"role"`
	StudentID  *string  `json:"studentId"`
	EmployeeID *string  `json:"employeeId"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"userId"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// Summary projects a stored user to its public shape.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.FullName,
		Role:       u.Role,
		StudentID:  u.StudentID,
		EmployeeID: u.EmployeeID,
	}
}
