// Package orders defines the finalized order payload and the boundary that
// submits it. Submission is an opaque async collaborator; the storefront
// only cares whether it succeeded.
package orders

import (
	"time"

	"github.com/andreasstove999/storefront/internal/cart"
	"github.com/andreasstove999/storefront/internal/pricing"
)

// Payload is the immutable bundle handed to the submission collaborator:
// the checkout form fields, the computed totals and a snapshot of the cart
// at confirmation time.
type Payload struct {
	OrderID       string        `json:"orderId"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Note          string        `json:"note,omitempty"`
	Coupon        string        `json:"coupon,omitempty"`
	PaymentMethod string        `json:"paymentMethod"`
	Subtotal      float64       `json:"subtotal"`
	ShippingFee   float64       `json:"shippingFee"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	Items         cart.Snapshot `json:"items"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ApplyTotals copies the computed totals into the payload.
func (p *Payload) ApplyTotals(t pricing.Totals) {
	p.Subtotal = t.Subtotal
	p.ShippingFee = t.ShippingFee
	p.Discount = t.Discount
	p.Total = t.Total
}
