package service

import "errors"

// Common service errors
var (
	// ErrPermissionDenied is returned when a user doesn't have permission for an action
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrCompanyNotFound is returned when a company is not found
	ErrCompanyNotFound = errors.New("company not found")

	// ErrInvalidCompanyID is returned when an unknown company ID is provided
	ErrInvalidCompanyID = errors.New("invalid company ID")

	// ErrInvalidStatusTransition is returned when a lifecycle transition is not allowed
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrOfferteNotEditable is returned when modifying an offerte that left the concept state
	ErrOfferteNotEditable = errors.New("offerte is not editable")

	// ErrOnvoldoendeVoorraad is returned when a stock booking would go below zero
	ErrOnvoldoendeVoorraad = errors.New("insufficient stock")
)
