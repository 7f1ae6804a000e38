package interfaces

import (
	"context"
	"daraja_stk/internal/domain/entities"
)

// IPaymentGateway abstracts the mobile-money provider (Safaricom Daraja).
//
// Failures are returned as *entities.GatewayError so callers never depend on
// the provider SDK. QueryPaymentStatus fills StkPushStatus.Outcome from the
// provider result code.
type IPaymentGateway interface {
	InitiatePayment(ctx context.Context, cmd entities.StkPushCommand) (entities.StkPushInitiation, error)
	QueryPaymentStatus(ctx context.Context, cmd entities.StkQueryCommand) (entities.StkPushStatus, error)
	Environment() string
}
