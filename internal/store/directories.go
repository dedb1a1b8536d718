package store

import (
	"strings"
	"sync"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// EngineerDirectory holds the engineer roster. Lookup by name survives as a
// compatibility shim for persisted jobs that carry only a denormalized name.
type EngineerDirectory struct {
	mu        sync.RWMutex
	engineers []domain.Engineer
}

// NewEngineerDirectory constructs a directory from the given roster.
func NewEngineerDirectory(engineers []domain.Engineer) *EngineerDirectory {
	return &EngineerDirectory{engineers: engineers}
}

// List returns a copy of the roster.
func (d *EngineerDirectory) List() []domain.Engineer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Engineer, len(d.engineers))
	copy(out, d.engineers)
	return out
}

// GetByID returns the engineer with the given id.
func (d *EngineerDirectory) GetByID(id string) (*domain.Engineer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.engineers {
		if d.engineers[i].ID == id {
			eng := d.engineers[i]
			return &eng, true
		}
	}
	return nil, false
}

// GetByName matches the display name case-insensitively.
func (d *EngineerDirectory) GetByName(name string) (*domain.Engineer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.engineers {
		if strings.EqualFold(d.engineers[i].Name, name) {
			eng := d.engineers[i]
			return &eng, true
		}
	}
	return nil, false
}

// CustomerDirectory holds the customer account list.
type CustomerDirectory struct {
	mu        sync.RWMutex
	customers []domain.Customer
}

// NewCustomerDirectory constructs a directory from the given accounts.
func NewCustomerDirectory(customers []domain.Customer) *CustomerDirectory {
	return &CustomerDirectory{customers: customers}
}

// List returns a copy of the accounts.
func (d *CustomerDirectory) List() []domain.Customer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.Customer, len(d.customers))
	copy(out, d.customers)
	return out
}

// GetByID returns the customer with the given id.
func (d *CustomerDirectory) GetByID(id string) (*domain.Customer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.customers {
		if d.customers[i].ID == id {
			c := d.customers[i]
			return &c, true
		}
	}
	return nil, false
}

// GetByName matches the account name case-insensitively.
func (d *CustomerDirectory) GetByName(name string) (*domain.Customer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.customers {
		if strings.EqualFold(d.customers[i].Name, name) {
			c := d.customers[i]
			return &c, true
		}
	}
	return nil, false
}
