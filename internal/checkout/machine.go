// Package checkout drives the order form through its lifecycle:
//
//	Editing -> Confirming -> Submitting -> Completed
//	                              \-> Failed -> Editing (form retained)
//
// Submission failures are never fatal; the machine returns to Editing with
// a message and the user can retry indefinitely.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/storefront/internal/address"
	"github.com/andreasstove999/storefront/internal/cart"
	"github.com/andreasstove999/storefront/internal/orders"
	"github.com/andreasstove999/storefront/internal/pricing"
)

type Stage string

const (
	StageEditing    Stage = "EDITING"
	StageConfirming Stage = "CONFIRMING"
	StageSubmitting Stage = "SUBMITTING"
	StageCompleted  Stage = "COMPLETED"
	StageFailed     Stage = "FAILED"
)

func (s Stage) IsTerminal() bool {
	return s == StageCompleted
}

// The single recognized coupon code, compared case-insensitively. There is
// no expiry, stacking or per-user restriction.
const couponCode = "discount10"

var (
	ErrValidation        = errors.New("form validation failed")
	ErrIllegalTransition = errors.New("illegal checkout stage transition")
)

// Machine owns one checkout attempt for one session. The owning cart is
// read for totals and snapshots; it is cleared through the onSuccess hook,
// not by the machine directly.
type Machine struct {
	mu sync.Mutex

	stage         Stage
	form          Form
	fieldErrors   map[string]string
	couponApplied bool
	notices       []Notice

	cart      *cart.Store
	submitter orders.Submitter
	book      *address.Book
	timeout   time.Duration
	onSuccess func(*orders.Payload)
}

// NewMachine builds a machine in Editing with an empty form. onSuccess is
// invoked exactly once, after a successful submission, with the final
// payload; clearing the cart is that hook's job.
func NewMachine(c *cart.Store, submitter orders.Submitter, book *address.Book, timeout time.Duration, onSuccess func(*orders.Payload)) *Machine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if onSuccess == nil {
		onSuccess = func(*orders.Payload) {}
	}
	return &Machine{
		stage:       StageEditing,
		form:        NewForm(),
		fieldErrors: make(map[string]string),
		cart:        c,
		submitter:   submitter,
		book:        book,
		timeout:     timeout,
		onSuccess:   onSuccess,
	}
}

func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

func (m *Machine) Form() Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

func (m *Machine) CouponApplied() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.couponApplied
}

// FieldErrors returns a copy of the current per-field validation messages.
func (m *Machine) FieldErrors() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.fieldErrors))
	for k, v := range m.fieldErrors {
		out[k] = v
	}
	return out
}

// Notices drains and returns the pending transient notices.
func (m *Machine) Notices() []Notice {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.notices
	m.notices = nil
	return out
}

// SetField updates one form field. Editing a field clears its validation
// error, matching the original behavior of clearing errors as the user
// types.
func (m *Machine) SetField(field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.form.set(field, value); err != nil {
		return err
	}
	delete(m.fieldErrors, field)
	return nil
}

// Totals computes the current order totals from the cart snapshot and the
// coupon flag.
func (m *Machine) Totals() pricing.Totals {
	m.mu.Lock()
	applied := m.couponApplied
	m.mu.Unlock()

	return pricing.ComputeTotals(m.cart.Snapshot(), applied)
}

// ApplyCoupon matches the code against the single valid coupon. Applying a
// valid code is idempotent; an invalid code resets the applied flag and
// sets a coupon error. Coupon errors never block submission.
func (m *Machine) ApplyCoupon(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.form.Coupon = code
	if strings.EqualFold(code, couponCode) {
		m.couponApplied = true
		delete(m.fieldErrors, "coupon")
		m.notices = append(m.notices, Notice{
			Kind:    NoticeSuccess,
			Message: "10% discount applied",
			Field:   "coupon",
		})
		return true
	}

	m.couponApplied = false
	m.fieldErrors["coupon"] = "invalid coupon code"
	return false
}

// Submit validates the form and moves Editing -> Confirming. On validation
// failure the machine stays in Editing with per-field errors populated and
// ErrValidation is returned.
func (m *Machine) Submit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stage != StageEditing {
		return fmt.Errorf("%w: submit from %s", ErrIllegalTransition, m.stage)
	}

	errs := m.form.Validate()
	if len(errs) > 0 {
		for field, msg := range errs {
			m.fieldErrors[field] = msg
		}
		return ErrValidation
	}

	m.stage = StageConfirming
	return nil
}

// Cancel moves Confirming -> Editing. Form values are retained.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stage != StageConfirming {
		return fmt.Errorf("%w: cancel from %s", ErrIllegalTransition, m.stage)
	}

	m.stage = StageEditing
	return nil
}

// Confirm moves Confirming -> Submitting and runs the order submission
// under the configured timeout. On success the machine completes, the
// onSuccess hook receives the payload and the returned payload is final.
// On failure the machine returns to Editing with the form retained and a
// user-facing error notice; the cart is untouched.
func (m *Machine) Confirm(ctx context.Context) (*orders.Payload, error) {
	m.mu.Lock()
	if m.stage != StageConfirming {
		stage := m.stage
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: confirm from %s", ErrIllegalTransition, stage)
	}
	m.stage = StageSubmitting
	payload := m.buildPayloadLocked()
	m.mu.Unlock()

	subCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.submitter.Submit(subCtx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.stage = StageEditing
		m.notices = append(m.notices, Notice{
			Kind:    NoticeError,
			Message: fmt.Sprintf("order submission failed: %v, please try again", err),
		})
		return nil, err
	}

	m.stage = StageCompleted
	m.onSuccess(payload)
	return payload, nil
}

func (m *Machine) buildPayloadLocked() *orders.Payload {
	snap := m.cart.Snapshot()
	p := &orders.Payload{
		OrderID:       uuid.NewString(),
		Name:          m.form.Name,
		Email:         m.form.Email,
		Phone:         m.form.Phone,
		Address:       m.form.Address,
		Note:          m.form.Note,
		Coupon:        m.form.Coupon,
		PaymentMethod: string(m.form.PaymentMethod),
		Items:         snap,
		CreatedAt:     time.Now().UTC(),
	}
	p.ApplyTotals(pricing.ComputeTotals(snap, m.couponApplied))
	return p
}

// SaveCurrentAddress stores the current contact fields in the address
// book. The fields are saved as typed, without form validation.
func (m *Machine) SaveCurrentAddress(ctx context.Context) (address.SavedAddress, error) {
	m.mu.Lock()
	a := address.SavedAddress{
		Name:    m.form.Name,
		Email:   m.form.Email,
		Phone:   m.form.Phone,
		Address: m.form.Address,
	}
	m.mu.Unlock()

	saved, err := m.book.Add(ctx, a)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.notices = append(m.notices, Notice{Kind: NoticeError, Message: "failed to save address"})
		return address.SavedAddress{}, err
	}
	m.notices = append(m.notices, Notice{Kind: NoticeSuccess, Message: "address saved"})
	return saved, nil
}

// UseSavedAddress copies the contact fields of a saved entry into the
// form, overwriting current values.
func (m *Machine) UseSavedAddress(a address.SavedAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.form.Name = a.Name
	m.form.Email = a.Email
	m.form.Phone = a.Phone
	m.form.Address = a.Address
}
