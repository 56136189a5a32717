package entity

import "time"

// Supplier representa un proveedor. Solo lo referencian las compras;
// no participa en los invariantes del ledger.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
