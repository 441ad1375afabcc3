// Package pricing computes order totals from a cart snapshot. It is pure
// arithmetic: no rounding is applied, display formatting is the caller's
// concern.
package pricing

import "github.com/andreasstove999/storefront/internal/cart"

const (
	// FreeShippingThreshold is strict: a subtotal of exactly 100 still
	// pays the standard fee.
	FreeShippingThreshold = 100.0
	StandardShippingFee   = 10.0
	CouponDiscountRate    = 0.10
)

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	ShippingFee float64 `json:"shippingFee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// ComputeTotals derives subtotal, shipping fee, coupon discount and grand
// total for the given cart lines.
func ComputeTotals(items cart.Snapshot, couponApplied bool) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}

	fee := StandardShippingFee
	if subtotal > FreeShippingThreshold {
		fee = 0
	}

	var discount float64
	if couponApplied {
		discount = subtotal * CouponDiscountRate
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: fee,
		Discount:    discount,
		Total:       subtotal + fee - discount,
	}
}
