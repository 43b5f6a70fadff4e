package config

import (
	"fmt"
	"strings"
)

// UserConfig seeds the support context attached to every request.
//
// Example:
//
//	user:
//	  name: Umer Ali
//	  email: umerali54544@gmail.com
//	  order_id: 410635
//	  premium: true
type UserConfig struct {
	// Name of the customer.
	Name string `yaml:"name,omitempty"`

	// Email of the customer.
	Email string `yaml:"email,omitempty"`

	// OrderID of the customer's most recent order.
	OrderID int `yaml:"order_id,omitempty"`

	// Premium marks the customer as a premium-plan subscriber.
	// Gates the refund tool. Default: false.
	Premium bool `yaml:"premium,omitempty"`
}

// SetDefaults applies the stock demo customer record.
func (c *UserConfig) SetDefaults() {
	if c.Name == "" {
		c.Name = "Umer Ali"
	}
	if c.Email == "" {
		c.Email = "umerali54544@gmail.com"
	}
	if c.OrderID == 0 {
		c.OrderID = 410635
	}
}

// Validate checks the user configuration.
func (c *UserConfig) Validate() error {
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("invalid email %q", c.Email)
	}
	if c.OrderID < 0 {
		return fmt.Errorf("order_id must be non-negative")
	}
	return nil
}
