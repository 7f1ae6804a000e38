package entities

import "time"

// PaymentOutcome is the payer-facing state of an STK push. Gateways derive it
// from the provider result per query; it is never stored.
type PaymentOutcome string

const (
	PaymentOutcomePending   PaymentOutcome = "pending"
	PaymentOutcomeSuccess   PaymentOutcome = "success"
	PaymentOutcomeFailed    PaymentOutcome = "failed"
	PaymentOutcomeCancelled PaymentOutcome = "cancelled"
)

// StkPushCommand is a request to prompt a payer for a PayBill payment.
//
// Amount is in whole shillings. BusinessShortCode and PassKey come as a pair:
// both empty means the configured merchant. CallbackURL falls back to the
// configured one when empty.
type StkPushCommand struct {
	BusinessShortCode string
	PassKey           string
	Amount            int64
	PhoneNumber       string
	CallbackURL       string
	AccountReference  string
	TransactionDesc   string
}

// StkPushInitiation is the provider acknowledgement of an STK push.
// CheckoutRequestID is what callers keep to query the outcome later.
type StkPushInitiation struct {
	MerchantRequestID   string
	CheckoutRequestID   string
	ResponseCode        string
	ResponseDescription string
	CustomerMessage     string
	Environment         string
	RequestedAt         time.Time
}

type StkQueryCommand struct {
	BusinessShortCode string
	PassKey           string
	CheckoutRequestID string
}

type StkPushStatus struct {
	ResponseCode        string
	ResponseDescription string
	MerchantRequestID   string
	CheckoutRequestID   string
	ResultCode          string
	ResultDesc          string
	Outcome             PaymentOutcome
}
