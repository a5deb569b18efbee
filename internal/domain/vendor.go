package domain

import (
	"context"
	"time"
)

// Vendor is a supplier expenses can be recorded against.
type Vendor struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationId"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (v *Vendor) Validate() error {
	if v.Name == "" {
		return ErrNameRequired
	}
	if len(v.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// VendorRepository provides persistence for vendors.
type VendorRepository interface {
	Create(ctx context.Context, vendor *Vendor) (*Vendor, error)
	GetByID(ctx context.Context, organizationID, id int64) (*Vendor, error)
	ListByOrganization(ctx context.Context, organizationID int64) ([]*Vendor, error)
}
