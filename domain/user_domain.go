package domain

import (
	"errors"
)

const (
	DemoUserName  = "Demo User"
	DemoUserEmail = "demo@wastenot.com"
)

var (
	MessageSuccessLogin             = "welcome back!"
	MessageSuccessLogout            = "logged out successfully"
	MessageSuccessGetUser           = "user retrieved successfully"
	MessageSuccessGetPreferences    = "preferences retrieved successfully"
	MessageSuccessUpdatePreferences = "preferences saved successfully"

	MessageFailedLogin             = "failed to login"
	MessageFailedLogout            = "failed to logout"
	MessageFailedGetUser           = "failed to get user"
	MessageFailedGetPreferences    = "failed to retrieve preferences"
	MessageFailedUpdatePreferences = "failed to save preferences"

	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPreference = errors.New("invalid preference value")
)

type (
	LoginRequest struct {
		Name  string `json:"name" validate:"omitempty,max=100"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	UserResponse struct {
		ID     string  `json:"id"`
		Name   string  `json:"name"`
		Email  string  `json:"email"`
		Avatar *string `json:"avatar"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
