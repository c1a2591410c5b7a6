package domain

import (
	"errors"
	"time"
)

var ErrSupplierNotFound = errors.New("supplier not found")
var ErrDuplicateMatricule = errors.New("supplier matricule already in use")
var ErrDuplicateEmail = errors.New("supplier email already in use")

// Supplier is the core aggregate root. Matricule and Email are unique across
// the whole collection; the Mongo unique indexes are the final authority on
// that invariant (the service-level checks only produce friendlier errors).
type Supplier struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Matricule     string    `json:"matricule" bson:"matricule"`
	Name          string    `json:"name" bson:"name"`
	Address       string    `json:"address" bson:"address"`
	TaxCode       string    `json:"tax_code" bson:"tax_code"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Phone2        string    `json:"phone2,omitempty" bson:"phone2,omitempty"`
	Fax           string    `json:"fax,omitempty" bson:"fax,omitempty"`
	ContactPerson string    `json:"contact_person" bson:"contact_person"`
	Currency      string    `json:"currency" bson:"currency"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
