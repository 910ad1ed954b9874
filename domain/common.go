package domain

import (
	"errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// NoneSentinel is reported by insights that have nothing to rank.
	NoneSentinel = "none"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessPing          = "pong"

	ErrValidation    = errors.New("validation failed")
	ErrStorageParse  = errors.New("stored data could not be parsed")
	ErrConfiguration = errors.New("missing configuration")
	ErrProvider      = errors.New("recipe provider request failed")
	ErrImportFormat  = errors.New("invalid import file")

	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)
