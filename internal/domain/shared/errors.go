package shared

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is; every DomainError unwraps to one of these.
var (
	ErrShipNotFound       = errors.New("ship not found")
	ErrSiteNotFound       = errors.New("site not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotOwner           = errors.New("not owner")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrInventoryFull      = errors.New("inventory full")
	ErrInvalidOrder       = errors.New("invalid order")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrNotSiteOwner       = errors.New("not site owner")
)

// DomainError is the base error type for all domain errors
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the error kind to errors.Is
func (e *DomainError) Unwrap() error {
	return e.Kind
}

func NewDomainError(kind error, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// Ship-related errors

func NewShipNotFoundError(shipID uint32) *DomainError {
	return NewDomainError(ErrShipNotFound, fmt.Sprintf("ship %d not found", shipID))
}

func NewShipAlreadyExistsError(shipID uint32) *DomainError {
	return NewDomainError(ErrAlreadyExists, fmt.Sprintf("ship %d already exists", shipID))
}

func NewNotOwnerError(shipID uint32, caller Identity) *DomainError {
	return NewDomainError(ErrNotOwner, fmt.Sprintf("caller %s does not own ship %d", caller, shipID))
}

type InsufficientEnergyError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientEnergyError(required, available int) *InsufficientEnergyError {
	return &InsufficientEnergyError{
		DomainError: NewDomainError(ErrInsufficientEnergy, fmt.Sprintf("insufficient energy: need %d, have %d", required, available)),
		Required:    required,
		Available:   available,
	}
}

func NewInvalidOrderError(message string) *DomainError {
	return NewDomainError(ErrInvalidOrder, "invalid order: "+message)
}

// Site-related errors

func NewSiteNotFoundError(siteID uint32) *DomainError {
	return NewDomainError(ErrSiteNotFound, fmt.Sprintf("site %d not found", siteID))
}

func NewSiteAlreadyExistsError(siteID uint32) *DomainError {
	return NewDomainError(ErrAlreadyExists, fmt.Sprintf("site %d already exists", siteID))
}

func NewNotAuthorizedError(message string) *DomainError {
	return NewDomainError(ErrNotAuthorized, "not authorized: "+message)
}

func NewResourceNotFoundError(message string) *DomainError {
	return NewDomainError(ErrResourceNotFound, "resource not found: "+message)
}

func NewNotSiteOwnerError(siteID uint32, caller Identity) *DomainError {
	return NewDomainError(ErrNotSiteOwner, fmt.Sprintf("%s does not own site %d", caller, siteID))
}

// Inventory errors

func NewInventoryFullError(size, maxSize int) *DomainError {
	return NewDomainError(ErrInventoryFull, fmt.Sprintf("inventory full: %d/%d slots used", size, maxSize))
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
