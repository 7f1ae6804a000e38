package usecase

import (
	"context"
	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidAmount               = errors.New("invalid amount")
	ErrInvalidPhoneNumber          = errors.New("invalid phone number")
	ErrInvalidCallbackURL          = errors.New("invalid callback url")
	ErrInvalidAccountReference     = errors.New("invalid account reference")
	ErrInvalidTransactionDesc      = errors.New("invalid transaction description")
	ErrInvalidCheckoutRequestID    = errors.New("invalid checkout_request_id")
	ErrMissingShortCode            = errors.New("missing business short code or passkey")
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrPaymentGatewayUnauthorized  = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayRejected      = errors.New("payment gateway rejected request")
	ErrPaymentGatewayUnavailable   = errors.New("payment gateway unavailable")
)

// Daraja field limits.
const (
	maxAccountReferenceLen = 12
	maxTransactionDescLen  = 13
	defaultTransactionDesc = "Payment"
)

var kenyanMSISDN = regexp.MustCompile(`^254[17]\d{8}$`)

// StkPushDefaults are the merchant settings applied when a command leaves them empty.
type StkPushDefaults struct {
	BusinessShortCode string
	PassKey           string
	CallbackURL       string
}

// IStkPushUseCase relays STK push initiation and status queries to the provider.
//
// No payment state is kept here: the caller stores the CheckoutRequestID and
// asks for the status whenever it needs it.

type IStkPushUseCase interface {
	Initiate(ctx context.Context, cmd entities.StkPushCommand) (entities.StkPushInitiation, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (entities.StkPushStatus, error)
	Environment() string
}

type StkPushUseCase struct {
	gateway  interfaces.IPaymentGateway
	defaults StkPushDefaults
}

var _ IStkPushUseCase = (*StkPushUseCase)(nil)

func NewStkPushUseCase(gateway interfaces.IPaymentGateway, defaults StkPushDefaults) *StkPushUseCase {
	return &StkPushUseCase{gateway: gateway, defaults: defaults}
}

func (u *StkPushUseCase) Initiate(ctx context.Context, cmd entities.StkPushCommand) (entities.StkPushInitiation, error) {
	log.Printf("[stk][usecase] initiate start amount=%d reference=%q", cmd.Amount, cmd.AccountReference)

	cmd, err := u.prepare(cmd)
	if err != nil {
		log.Printf("[stk][usecase] initiate invalid input err=%v", err)
		return entities.StkPushInitiation{}, err
	}
	if u.gateway == nil {
		log.Printf("[stk][usecase] gateway not configured")
		return entities.StkPushInitiation{}, ErrPaymentGatewayNotConfigured
	}

	res, err := u.gateway.InitiatePayment(ctx, cmd)
	if err != nil {
		log.Printf("[stk][usecase] initiate gateway failed reference=%s err=%v", cmd.AccountReference, err)
		return entities.StkPushInitiation{}, mapGatewayError(err)
	}
	log.Printf("[stk][usecase] initiate success reference=%s checkout_request_id=%s", cmd.AccountReference, res.CheckoutRequestID)
	return res, nil
}

func (u *StkPushUseCase) QueryStatus(ctx context.Context, checkoutRequestID string) (entities.StkPushStatus, error) {
	checkoutRequestID = strings.TrimSpace(checkoutRequestID)
	if checkoutRequestID == "" {
		return entities.StkPushStatus{}, ErrInvalidCheckoutRequestID
	}
	if u.defaults.BusinessShortCode == "" || u.defaults.PassKey == "" {
		return entities.StkPushStatus{}, ErrMissingShortCode
	}
	if u.gateway == nil {
		log.Printf("[stk][usecase] gateway not configured")
		return entities.StkPushStatus{}, ErrPaymentGatewayNotConfigured
	}

	status, err := u.gateway.QueryPaymentStatus(ctx, entities.StkQueryCommand{
		BusinessShortCode: u.defaults.BusinessShortCode,
		PassKey:           u.defaults.PassKey,
		CheckoutRequestID: checkoutRequestID,
	})
	if err != nil {
		var gwErr *entities.GatewayError
		if errors.As(err, &gwErr) && gwErr.InProgress() {
			log.Printf("[stk][usecase] query pending checkout_request_id=%s", checkoutRequestID)
			return entities.StkPushStatus{
				CheckoutRequestID: checkoutRequestID,
				ResultDesc:        gwErr.Message,
				Outcome:           entities.PaymentOutcomePending,
			}, nil
		}
		log.Printf("[stk][usecase] query gateway failed checkout_request_id=%s err=%v", checkoutRequestID, err)
		return entities.StkPushStatus{}, mapGatewayError(err)
	}

	if status.Outcome == "" {
		status.Outcome = entities.PaymentOutcomePending
	}
	log.Printf("[stk][usecase] query success checkout_request_id=%s result_code=%s outcome=%s", checkoutRequestID, status.ResultCode, status.Outcome)
	return status, nil
}

func (u *StkPushUseCase) Environment() string {
	if u.gateway == nil {
		return ""
	}
	return u.gateway.Environment()
}

// prepare fills merchant defaults and validates the command against the
// provider's field rules.
func (u *StkPushUseCase) prepare(cmd entities.StkPushCommand) (entities.StkPushCommand, error) {
	if cmd.Amount <= 0 {
		return cmd, ErrInvalidAmount
	}

	phone, err := NormalizePhoneNumber(cmd.PhoneNumber)
	if err != nil {
		return cmd, err
	}
	cmd.PhoneNumber = phone

	// A passkey belongs to one shortcode, so the pair is taken from the
	// command or from the defaults, never mixed.
	cmd.BusinessShortCode = strings.TrimSpace(cmd.BusinessShortCode)
	cmd.PassKey = strings.TrimSpace(cmd.PassKey)
	if cmd.BusinessShortCode == "" && cmd.PassKey == "" {
		cmd.BusinessShortCode = u.defaults.BusinessShortCode
		cmd.PassKey = u.defaults.PassKey
	}
	if cmd.BusinessShortCode == "" || cmd.PassKey == "" {
		return cmd, ErrMissingShortCode
	}

	cmd.CallbackURL = firstNonEmpty(cmd.CallbackURL, u.defaults.CallbackURL)
	if !validCallbackURL(cmd.CallbackURL) {
		return cmd, ErrInvalidCallbackURL
	}

	cmd.AccountReference = strings.TrimSpace(cmd.AccountReference)
	if n := utf8.RuneCountInString(cmd.AccountReference); n == 0 || n > maxAccountReferenceLen {
		return cmd, ErrInvalidAccountReference
	}

	cmd.TransactionDesc = firstNonEmpty(cmd.TransactionDesc, defaultTransactionDesc)
	if utf8.RuneCountInString(cmd.TransactionDesc) > maxTransactionDescLen {
		return cmd, ErrInvalidTransactionDesc
	}
	return cmd, nil
}

// NormalizePhoneNumber turns common Kenyan formats (07XXXXXXXX, +2547XXXXXXXX,
// 7XXXXXXXX, with spaces or dashes) into 2547XXXXXXXX.
func NormalizePhoneNumber(raw string) (string, error) {
	s := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "+")
	switch {
	case len(s) == 10 && strings.HasPrefix(s, "0"):
		s = "254" + s[1:]
	case len(s) == 9 && (s[0] == '7' || s[0] == '1'):
		s = "254" + s
	}
	if !kenyanMSISDN.MatchString(s) {
		return "", ErrInvalidPhoneNumber
	}
	return s, nil
}

func validCallbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func mapGatewayError(err error) error {
	var gwErr *entities.GatewayError
	if !errors.As(err, &gwErr) {
		return err
	}
	switch {
	case gwErr.Kind == entities.GatewayErrorAuthentication:
		return fmt.Errorf("%w: %s", ErrPaymentGatewayUnauthorized, gwErr.Message)
	case gwErr.Rejected():
		return fmt.Errorf("%w: %s", ErrPaymentGatewayRejected, gwErr.Message)
	default:
		return fmt.Errorf("%w: %s", ErrPaymentGatewayUnavailable, gwErr.Message)
	}
}
