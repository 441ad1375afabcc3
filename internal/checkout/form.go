package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentBanking PaymentMethod = "banking"
	PaymentMomo    PaymentMethod = "momo"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentBanking, PaymentMomo:
		return true
	default:
		return false
	}
}

// Form holds the checkout fields the user edits. It lives only while the
// checkout UI is open; closing it discards the form entirely.
type Form struct {
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Note          string        `json:"note"`
	Coupon        string        `json:"coupon"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

func NewForm() Form {
	return Form{PaymentMethod: PaymentCOD}
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// Validate checks the four required fields and returns one message per
// failing field. An empty map means the form may leave Editing.
func (f Form) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "please enter your full name"
	}

	switch {
	case strings.TrimSpace(f.Email) == "":
		errs["email"] = "please enter your email"
	case !emailPattern.MatchString(f.Email):
		errs["email"] = "invalid email address"
	}

	switch {
	case strings.TrimSpace(f.Phone) == "":
		errs["phone"] = "please enter your phone number"
	case !phonePattern.MatchString(f.Phone):
		errs["phone"] = "invalid phone number"
	}

	if strings.TrimSpace(f.Address) == "" {
		errs["address"] = "please enter your address"
	}

	return errs
}

// set assigns one field by its wire name. The coupon field holds the typed
// code; applying it is a separate operation.
func (f *Form) set(field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "address":
		f.Address = value
	case "note":
		f.Note = value
	case "coupon":
		f.Coupon = value
	case "paymentMethod":
		m := PaymentMethod(value)
		if !m.Valid() {
			return fmt.Errorf("unknown payment method %q", value)
		}
		f.PaymentMethod = m
	default:
		return fmt.Errorf("unknown form field %q", field)
	}
	return nil
}
