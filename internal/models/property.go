package models

import "time"

// Property represents a managed property. Invoices and residents are
// scoped to a property, and only its manager may issue invoices for it.
type Property struct {
	// ID is the unique identifier for the property (UUID format).
	ID string

	// Name is the display name of the property (e.g., "Maple Court").
	Name string

	Address string

	// ManagerID is the user ID of the property manager.
	ManagerID string

	CreatedAt time.Time
}

// Resident is a party living at a property who can be billed.
// The invoicing core only consumes its ID; Name and Unit are display fields.
type Resident struct {
	ID         string
	PropertyID string
	Name       string

	// Unit is the apartment or unit label (e.g., "4B").
	Unit string

	// UserID optionally links the resident to a login account so they
	// can mark their own splits paid. Empty when the resident has no account.
	UserID string

	CreatedAt time.Time
}
