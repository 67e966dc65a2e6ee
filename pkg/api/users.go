package api

import "time"

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// CreateUserFields lists the keys POST /users requires, in reporting order.
var CreateUserFields = []string{"firstName", "lastName", "username", "email", "password"}

// User is the public representation of a user account.
// Password hash and token are never part of it.
type User struct {
	DateCreated time.Time `json:"dateCreated"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ID          int64     `json:"id"`
}

// TokenResponse is returned by GET /token
type TokenResponse struct {
	TokenExpiration time.Time `json:"tokenExpiration"` // RFC 3339, UTC
	Token           string    `json:"token"`           // opaque bearer token
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is returned by delete endpoints.
type SuccessResponse struct {
	Success string `json:"success"`
}
