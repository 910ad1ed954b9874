package domain

import (
	"errors"
	"time"
)

const (
	DefaultRecentItems = 5
	MaxRecentItems     = 100
)

var (
	MessageSuccessAddItem      = "item added successfully"
	MessageSuccessUpdateItem   = "item updated successfully"
	MessageSuccessDeleteItem   = "item deleted successfully"
	MessageSuccessBulkDelete   = "items deleted successfully"
	MessageSuccessGetItems     = "items retrieved successfully"
	MessageSuccessGetDashboard = "dashboard statistics retrieved successfully"

	MessageFailedAddItem      = "please fill in all required fields"
	MessageFailedUpdateItem   = "failed to update item"
	MessageFailedDeleteItem   = "failed to delete item"
	MessageFailedBulkDelete   = "please select items to delete"
	MessageFailedGetItems     = "failed to retrieve items"
	MessageFailedGetDashboard = "failed to retrieve dashboard statistics"

	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrUnknownStatus     = errors.New("unknown status filter")
)

type (
	AddItemRequest struct {
		Name       string  `json:"name" validate:"required"`
		Category   string  `json:"category" validate:"required"`
		Quantity   float64 `json:"quantity" validate:"min=0"`
		Unit       string  `json:"unit"`
		ExpiryDate string  `json:"expiry_date" validate:"required"`
		Notes      string  `json:"notes"`
	}

	// UpdateItemRequest mirrors the edit form; omitted fields keep their value.
	UpdateItemRequest struct {
		Name       *string  `json:"name" validate:"omitempty,min=1"`
		Category   *string  `json:"category" validate:"omitempty,min=1"`
		Quantity   *float64 `json:"quantity" validate:"omitempty,min=0"`
		Unit       *string  `json:"unit"`
		ExpiryDate *string  `json:"expiry_date" validate:"omitempty,min=1"`
		Notes      *string  `json:"notes"`
	}

	BulkDeleteRequest struct {
		IDs []string `json:"ids" validate:"required,min=1,dive,required"`
	}

	ItemFilter struct {
		Search   string `query:"search"`
		Category string `query:"category"`
		Status   string `query:"status"`
	}

	ItemResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Category        string    `json:"category"`
		Quantity        float64   `json:"quantity"`
		Unit            string    `json:"unit"`
		ExpiryDate      time.Time `json:"expiry_date"`
		AddedDate       time.Time `json:"added_date"`
		Notes           string    `json:"notes"`
		Status          string    `json:"status"`
		DaysUntilExpiry float64   `json:"days_until_expiry"`
	}

	BulkDeleteResponse struct {
		Removed   int `json:"removed"`
		Remaining int `json:"remaining"`
	}
)
