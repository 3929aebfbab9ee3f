package model

import "time"

// RoleStudent is granted to every account created through registration.
const RoleStudent = "Student"

// User represents a login credential in the database.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents a user registration request.
// Name is optional and defaults to the username.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=100"`
	Password       string `json:"password" validate:"required"`
	Name           string `json:"name" validate:"max=100"`
	Phone          string `json:"phone" validate:"max=20"`
	Major          string `json:"major" validate:"max=100"`
	GraduationYear int    `json:"graduationYear" validate:"omitempty,min=1900,max=2100"`
}

// AuthResult is the body returned by login and registration.
// It never carries password material.
type AuthResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}
