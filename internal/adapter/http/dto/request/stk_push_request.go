package request

import (
	"strings"

	"daraja_stk/internal/domain/entities"
)

// StkPushRequest is the body of POST /v1/stk-push.
//
// callback_url is optional; the configured one is used when it is omitted.
// Payments always go to the configured merchant shortcode.
type StkPushRequest struct {
	Amount           int64  `json:"amount" example:"100"`
	PhoneNumber      string `json:"phone_number" binding:"required" example:"0712345678"`
	AccountReference string `json:"account_reference" binding:"required" example:"ORDER-123"`
	TransactionDesc  string `json:"transaction_desc" example:"Order 123"`
	CallbackURL      string `json:"callback_url,omitempty" example:"https://example.com/api/mpesa/callback"`
}

func (r StkPushRequest) ToCommand() entities.StkPushCommand {
	return entities.StkPushCommand{
		Amount:           r.Amount,
		PhoneNumber:      strings.TrimSpace(r.PhoneNumber),
		CallbackURL:      strings.TrimSpace(r.CallbackURL),
		AccountReference: strings.TrimSpace(r.AccountReference),
		TransactionDesc:  strings.TrimSpace(r.TransactionDesc),
	}
}
