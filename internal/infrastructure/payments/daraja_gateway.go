package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"
	"daraja_stk/pkg/daraja"

	"github.com/google/uuid"
)

var ErrDarajaGatewayNotConfigured = errors.New("daraja gateway not configured")

// DarajaGateway relays STK push calls to one Daraja environment.
type DarajaGateway struct {
	client      *daraja.Client
	environment daraja.Environment
	mockMode    bool
	now         func() time.Time
}

var _ interfaces.IPaymentGateway = (*DarajaGateway)(nil)

// NewDarajaGateway builds the gateway for environment. With PAYMENT_GATEWAY_MOCK
// or DARAJA_MOCK set, no credentials are needed and no request leaves the process.
func NewDarajaGateway(cfg daraja.Config, environment string, opts ...daraja.Option) (*DarajaGateway, error) {
	env, err := daraja.ParseEnvironment(environment)
	if err != nil {
		log.Printf("[stk][gateway] invalid environment=%q", environment)
		return nil, err
	}

	if isPaymentGatewayMockEnabled() {
		log.Printf("[stk][gateway] mock mode enabled env=%s", env)
		return &DarajaGateway{environment: env, mockMode: true, now: time.Now}, nil
	}

	client, err := daraja.New(cfg, opts...).Client(env)
	if err != nil {
		log.Printf("[stk][gateway] failed creating daraja client err=%v", err)
		return nil, err
	}
	log.Printf("[stk][gateway] Daraja client initialized env=%s", env)

	return NewDarajaGatewayWithClient(client), nil
}

// NewDarajaGatewayWithClient wraps an existing client.
func NewDarajaGatewayWithClient(client *daraja.Client) *DarajaGateway {
	g := &DarajaGateway{client: client, now: time.Now}
	if client != nil {
		g.environment = client.Environment()
	}
	return g
}

func (g *DarajaGateway) Environment() string {
	if g == nil {
		return ""
	}
	return g.environment.String()
}

func (g *DarajaGateway) InitiatePayment(ctx context.Context, cmd entities.StkPushCommand) (entities.StkPushInitiation, error) {
	if g != nil && g.mockMode {
		id := uuid.NewString()
		log.Printf("[stk][gateway] mock initiate reference=%s checkout_request_id=ws_CO_%s", cmd.AccountReference, id)
		return entities.StkPushInitiation{
			MerchantRequestID:   "mock-" + id,
			CheckoutRequestID:   "ws_CO_" + id,
			ResponseCode:        "0",
			ResponseDescription: "Success. Request accepted for processing",
			CustomerMessage:     "Success. Request accepted for processing",
			Environment:         g.environment.String(),
			RequestedAt:         g.now().UTC(),
		}, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[stk][gateway] gateway not configured")
		return entities.StkPushInitiation{}, ErrDarajaGatewayNotConfigured
	}
	log.Printf("[stk][gateway] initiate start env=%s reference=%s amount=%d", g.environment, cmd.AccountReference, cmd.Amount)

	resp, err := g.client.StkPush(ctx, daraja.StkPushRequest{
		BusinessShortCode: cmd.BusinessShortCode,
		PassKey:           cmd.PassKey,
		Amount:            cmd.Amount,
		PhoneNumber:       cmd.PhoneNumber,
		CallBackURL:       cmd.CallbackURL,
		AccountReference:  cmd.AccountReference,
		TransactionDesc:   cmd.TransactionDesc,
	})
	if err != nil {
		log.Printf("[stk][gateway] initiate failed env=%s err=%v", g.environment, err)
		return entities.StkPushInitiation{}, toGatewayError(entities.GatewayErrorInitiation, err)
	}
	log.Printf("[stk][gateway] initiate success checkout_request_id=%s response_code=%s", resp.CheckoutRequestID, resp.ResponseCode)

	return entities.StkPushInitiation{
		MerchantRequestID:   resp.MerchantRequestID,
		CheckoutRequestID:   resp.CheckoutRequestID,
		ResponseCode:        resp.ResponseCode,
		ResponseDescription: resp.ResponseDescription,
		CustomerMessage:     resp.CustomerMessage,
		Environment:         g.environment.String(),
		RequestedAt:         g.now().UTC(),
	}, nil
}

func (g *DarajaGateway) QueryPaymentStatus(ctx context.Context, cmd entities.StkQueryCommand) (entities.StkPushStatus, error) {
	if g != nil && g.mockMode {
		log.Printf("[stk][gateway] mock query checkout_request_id=%s", cmd.CheckoutRequestID)
		return entities.StkPushStatus{
			ResponseCode:        "0",
			ResponseDescription: "The service request has been accepted successfully",
			MerchantRequestID:   "mock-" + strings.TrimPrefix(cmd.CheckoutRequestID, "ws_CO_"),
			CheckoutRequestID:   cmd.CheckoutRequestID,
			ResultCode:          strconv.Itoa(daraja.ResultCodeSuccess),
			ResultDesc:          "The service request is processed successfully.",
			Outcome:             entities.PaymentOutcomeSuccess,
		}, nil
	}

	if g == nil || g.client == nil {
		log.Printf("[stk][gateway] gateway not configured")
		return entities.StkPushStatus{}, ErrDarajaGatewayNotConfigured
	}
	log.Printf("[stk][gateway] query start env=%s checkout_request_id=%s", g.environment, cmd.CheckoutRequestID)

	resp, err := g.client.StkPushQuery(ctx, daraja.StkPushQueryRequest{
		BusinessShortCode: cmd.BusinessShortCode,
		PassKey:           cmd.PassKey,
		CheckoutRequestID: cmd.CheckoutRequestID,
	})
	if err != nil {
		log.Printf("[stk][gateway] query failed env=%s checkout_request_id=%s err=%v", g.environment, cmd.CheckoutRequestID, err)
		return entities.StkPushStatus{}, toGatewayError(entities.GatewayErrorQuery, err)
	}
	log.Printf("[stk][gateway] query success checkout_request_id=%s result_code=%s", resp.CheckoutRequestID, resp.ResultCode)

	return entities.StkPushStatus{
		ResponseCode:        resp.ResponseCode,
		ResponseDescription: resp.ResponseDescription,
		MerchantRequestID:   resp.MerchantRequestID,
		CheckoutRequestID:   resp.CheckoutRequestID,
		ResultCode:          resp.ResultCode,
		ResultDesc:          resp.ResultDesc,
		Outcome:             outcomeFromResultCode(resp.ResultCode),
	}, nil
}

// outcomeFromResultCode maps a Daraja ResultCode to a PaymentOutcome. An empty
// code means the payer has not acted yet.
func outcomeFromResultCode(code string) entities.PaymentOutcome {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.PaymentOutcomePending
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return entities.PaymentOutcomeFailed
	}
	switch n {
	case daraja.ResultCodeSuccess:
		return entities.PaymentOutcomeSuccess
	case daraja.ResultCodeCancelledByUser:
		return entities.PaymentOutcomeCancelled
	default:
		return entities.PaymentOutcomeFailed
	}
}

// toGatewayError converts daraja errors into provider-neutral ones. A failed
// token fetch is reported as an authentication error whatever the operation.
func toGatewayError(kind entities.GatewayErrorKind, err error) error {
	var authErr *daraja.AuthenticationError
	if errors.As(err, &authErr) {
		kind = entities.GatewayErrorAuthentication
	}

	apiErr, ok := daraja.AsAPIError(err)
	if !ok {
		return &entities.GatewayError{Kind: kind, Message: err.Error(), Err: err}
	}
	msg := apiErr.Message
	if msg == "" {
		msg = fmt.Sprintf("unexpected status code %d", apiErr.StatusCode)
	}
	return &entities.GatewayError{
		Kind:         kind,
		StatusCode:   apiErr.StatusCode,
		ProviderCode: apiErr.ErrorCode,
		Message:      msg,
		Err:          err,
		Pending:      apiErr.ErrorCode == daraja.ErrorCodeTransactionInProgress,
	}
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "DARAJA_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
