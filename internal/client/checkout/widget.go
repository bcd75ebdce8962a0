// Package checkout drives a credit purchase end to end: load the gateway
// script once per process, create a server-side order, hand the order to the
// external checkout widget and verify the gateway's completion callback with
// the backend. The backend's verification verdict is authoritative; the
// widget callback alone never credits anything.
package checkout

import (
	"context"
	"time"
)

// Prefill carries identity fields shown pre-filled inside the widget.
type Prefill struct {
	Email   string
	Name    string
	Contact string
}

// Options is the configuration handed to the external checkout widget for
// one attempt. Amount is in the gateway's minor unit.
type Options struct {
	Key         string
	OrderID     string
	Amount      int64
	Currency    string
	Name        string
	Description string
	Prefill     Prefill
	ThemeColor  string
	Timeout     time.Duration
}

// Completion holds the gateway-issued identifiers reported by the widget's
// completion handler. They are forwarded verbatim to the verify endpoint.
type Completion struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Result is the two-case outcome of one widget invocation: either the
// gateway reported a finished payment (Completed set) or the user closed
// the widget without paying (Dismissed).
type Result struct {
	Completed *Completion
	Dismissed bool
}

// Widget is the external checkout UI. Open blocks until the widget settles
// one way or the other; it returns an error only when the widget could not
// be presented at all.
type Widget interface {
	Open(ctx context.Context, opts Options) (*Result, error)
}
