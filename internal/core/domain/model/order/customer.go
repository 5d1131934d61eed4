package order

import (
	"errors"
	"strings"

	"fueldispatch/internal/pkg/errs"
	"fueldispatch/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly
// initialized Customer value object.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is an immutable value object holding the recipient details of an
// order: name, phone number and the free-text delivery address the
// neighborhood extractor clusters on.
type Customer struct {
	name    string
	phone   string
	address string
	guard   guard.ConstructorGuard
}

// NewCustomer creates a Customer. Name and address are required; the address
// must be non-blank because batching depends on it for clustering. Phone is
// required for delivery-day notifications.
func NewCustomer(name string, phone string, address string) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setName(name),
		customer.setPhone(phone),
		customer.setAddress(address),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate checks the Customer was created via NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's name.
func (c Customer) Name() string {
	return c.name
}

// Phone returns the customer's phone number.
func (c Customer) Phone() string {
	return c.phone
}

// Address returns the free-text delivery address.
func (c Customer) Address() string {
	return c.address
}

func (c *Customer) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	c.name = name
	return nil
}

func (c *Customer) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}
	c.phone = phone
	return nil
}

func (c *Customer) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.address = address
	return nil
}
