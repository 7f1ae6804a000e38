package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"daraja_stk/internal/domain/entities"
	mock_interfaces "daraja_stk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testDefaults = StkPushDefaults{
	BusinessShortCode: "174379",
	PassKey:           "passkey",
	CallbackURL:       "https://example.com/api/mpesa/callback",
}

func validCommand() entities.StkPushCommand {
	return entities.StkPushCommand{
		Amount:           100,
		PhoneNumber:      "0712345678",
		AccountReference: "ORDER-123",
		TransactionDesc:  "Order 123",
	}
}

func TestStkPushUseCase_Initiate_Validations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *entities.StkPushCommand)
		defs   StkPushDefaults
		want   error
	}{
		{name: "zero amount", mutate: func(c *entities.StkPushCommand) { c.Amount = 0 }, defs: testDefaults, want: ErrInvalidAmount},
		{name: "negative amount", mutate: func(c *entities.StkPushCommand) { c.Amount = -5 }, defs: testDefaults, want: ErrInvalidAmount},
		{name: "short code without passkey", mutate: func(c *entities.StkPushCommand) { c.BusinessShortCode = "600000" }, defs: testDefaults, want: ErrMissingShortCode},
		{name: "passkey without short code", mutate: func(c *entities.StkPushCommand) { c.PassKey = "other-passkey" }, defs: testDefaults, want: ErrMissingShortCode},
		{name: "bad phone", mutate: func(c *entities.StkPushCommand) { c.PhoneNumber = "12345" }, defs: testDefaults, want: ErrInvalidPhoneNumber},
		{name: "missing short code", mutate: func(c *entities.StkPushCommand) {}, defs: StkPushDefaults{CallbackURL: testDefaults.CallbackURL}, want: ErrMissingShortCode},
		{name: "missing callback", mutate: func(c *entities.StkPushCommand) {}, defs: StkPushDefaults{BusinessShortCode: "174379", PassKey: "p"}, want: ErrInvalidCallbackURL},
		{name: "non http callback", mutate: func(c *entities.StkPushCommand) { c.CallbackURL = "ftp://example.com/cb" }, defs: testDefaults, want: ErrInvalidCallbackURL},
		{name: "empty reference", mutate: func(c *entities.StkPushCommand) { c.AccountReference = "  " }, defs: testDefaults, want: ErrInvalidAccountReference},
		{name: "long reference", mutate: func(c *entities.StkPushCommand) { c.AccountReference = strings.Repeat("A", 13) }, defs: testDefaults, want: ErrInvalidAccountReference},
		{name: "long description", mutate: func(c *entities.StkPushCommand) { c.TransactionDesc = strings.Repeat("d", 14) }, defs: testDefaults, want: ErrInvalidTransactionDesc},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewStkPushUseCase(gateway, tc.defs)

			cmd := validCommand()
			tc.mutate(&cmd)
			_, err := uc.Initiate(context.Background(), cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewStkPushUseCase(nil, testDefaults)
		_, err := uc.Initiate(context.Background(), validCommand())
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})
}

func TestStkPushUseCase_Initiate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewStkPushUseCase(gateway, testDefaults)

	want := entities.StkPushInitiation{
		MerchantRequestID: "29115-34620561-1",
		CheckoutRequestID: "ws_CO_191220191020363925",
		ResponseCode:      "0",
		Environment:       "sandbox",
		RequestedAt:       time.Now().UTC(),
	}

	gateway.EXPECT().InitiatePayment(gomock.Any(), gomock.AssignableToTypeOf(entities.StkPushCommand{})).DoAndReturn(
		func(_ context.Context, cmd entities.StkPushCommand) (entities.StkPushInitiation, error) {
			if cmd.PhoneNumber != "254712345678" {
				t.Fatalf("phone not normalized: %s", cmd.PhoneNumber)
			}
			if cmd.BusinessShortCode != "174379" || cmd.PassKey != "passkey" {
				t.Fatalf("defaults not applied: %+v", cmd)
			}
			if cmd.CallbackURL != testDefaults.CallbackURL {
				t.Fatalf("callback default not applied: %s", cmd.CallbackURL)
			}
			if cmd.AccountReference != "ORDER-123" || cmd.Amount != 100 {
				t.Fatalf("unexpected command: %+v", cmd)
			}
			return want, nil
		},
	)

	res, err := uc.Initiate(context.Background(), validCommand())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != want {
		t.Fatalf("expected pass-through result, got %+v", res)
	}
}

func TestStkPushUseCase_Initiate_OverridesAndDefaultDesc(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	uc := NewStkPushUseCase(gateway, testDefaults)

	cmd := validCommand()
	cmd.BusinessShortCode = "600000"
	cmd.PassKey = "other-passkey"
	cmd.CallbackURL = "https://shop.example.com/cb"
	cmd.TransactionDesc = ""

	gateway.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got entities.StkPushCommand) (entities.StkPushInitiation, error) {
			if got.BusinessShortCode != "600000" || got.PassKey != "other-passkey" {
				t.Fatalf("merchant override lost: %+v", got)
			}
			if got.CallbackURL != "https://shop.example.com/cb" {
				t.Fatalf("callback override lost: %s", got.CallbackURL)
			}
			if got.TransactionDesc != "Payment" {
				t.Fatalf("expected default description, got %q", got.TransactionDesc)
			}
			return entities.StkPushInitiation{CheckoutRequestID: "ws_CO_1"}, nil
		},
	)

	if _, err := uc.Initiate(context.Background(), cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStkPushUseCase_Initiate_GatewayErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "authentication", err: &entities.GatewayError{Kind: entities.GatewayErrorAuthentication, StatusCode: 400, Message: "Invalid Authentication passed"}, want: ErrPaymentGatewayUnauthorized},
		{name: "rejected", err: &entities.GatewayError{Kind: entities.GatewayErrorInitiation, StatusCode: 400, Message: "Bad Request - Invalid Amount"}, want: ErrPaymentGatewayRejected},
		{name: "provider 5xx", err: &entities.GatewayError{Kind: entities.GatewayErrorInitiation, StatusCode: 503, Message: "unexpected status code 503"}, want: ErrPaymentGatewayUnavailable},
		{name: "transport", err: &entities.GatewayError{Kind: entities.GatewayErrorInitiation, Message: "EOF"}, want: ErrPaymentGatewayUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewStkPushUseCase(gateway, testDefaults)

			gateway.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(entities.StkPushInitiation{}, tc.err)

			_, err := uc.Initiate(context.Background(), validCommand())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var gwErr *entities.GatewayError
			_ = errors.As(tc.err, &gwErr)
			if !strings.Contains(err.Error(), gwErr.Message) {
				t.Fatalf("provider message lost: %v", err)
			}
		})
	}

	t.Run("unknown error passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewStkPushUseCase(gateway, testDefaults)

		gateway.EXPECT().InitiatePayment(gomock.Any(), gomock.Any()).Return(entities.StkPushInitiation{}, errors.New("boom"))

		_, err := uc.Initiate(context.Background(), validCommand())
		if err == nil || err.Error() != "boom" {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestStkPushUseCase_QueryStatus(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		uc := NewStkPushUseCase(nil, testDefaults)
		_, err := uc.QueryStatus(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidCheckoutRequestID) {
			t.Fatalf("expected ErrInvalidCheckoutRequestID, got %v", err)
		}
	})

	t.Run("missing short code", func(t *testing.T) {
		uc := NewStkPushUseCase(nil, StkPushDefaults{})
		_, err := uc.QueryStatus(context.Background(), "ws_CO_1")
		if !errors.Is(err, ErrMissingShortCode) {
			t.Fatalf("expected ErrMissingShortCode, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewStkPushUseCase(nil, testDefaults)
		_, err := uc.QueryStatus(context.Background(), "ws_CO_1")
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	outcomes := []struct {
		code    string
		outcome entities.PaymentOutcome
		want    entities.PaymentOutcome
	}{
		{code: "0", outcome: entities.PaymentOutcomeSuccess, want: entities.PaymentOutcomeSuccess},
		{code: "1032", outcome: entities.PaymentOutcomeCancelled, want: entities.PaymentOutcomeCancelled},
		{code: "1", outcome: entities.PaymentOutcomeFailed, want: entities.PaymentOutcomeFailed},
		{code: "", outcome: "", want: entities.PaymentOutcomePending},
	}
	for _, tc := range outcomes {
		t.Run("result code "+tc.code, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewStkPushUseCase(gateway, testDefaults)

			gateway.EXPECT().QueryPaymentStatus(gomock.Any(), entities.StkQueryCommand{
				BusinessShortCode: "174379",
				PassKey:           "passkey",
				CheckoutRequestID: "ws_CO_1",
			}).Return(entities.StkPushStatus{CheckoutRequestID: "ws_CO_1", ResultCode: tc.code, Outcome: tc.outcome}, nil)

			res, err := uc.QueryStatus(context.Background(), " ws_CO_1 ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Outcome != tc.want || res.ResultCode != tc.code {
				t.Fatalf("expected outcome %s, got %+v", tc.want, res)
			}
		})
	}

	t.Run("in progress becomes pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewStkPushUseCase(gateway, testDefaults)

		gateway.EXPECT().QueryPaymentStatus(gomock.Any(), gomock.Any()).Return(entities.StkPushStatus{}, &entities.GatewayError{
			Kind:         entities.GatewayErrorQuery,
			StatusCode:   500,
			ProviderCode: "500.001.1001",
			Message:      "The transaction is being processed",
			Pending:      true,
		})

		res, err := uc.QueryStatus(context.Background(), "ws_CO_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != entities.PaymentOutcomePending || res.CheckoutRequestID != "ws_CO_1" {
			t.Fatalf("expected pending status, got %+v", res)
		}
	})

	t.Run("other query failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewStkPushUseCase(gateway, testDefaults)

		gateway.EXPECT().QueryPaymentStatus(gomock.Any(), gomock.Any()).Return(entities.StkPushStatus{}, &entities.GatewayError{
			Kind:         entities.GatewayErrorQuery,
			StatusCode:   400,
			ProviderCode: "400.002.02",
			Message:      "Bad Request - Invalid CheckoutRequestID",
		})

		_, err := uc.QueryStatus(context.Background(), "ws_CO_1")
		if !errors.Is(err, ErrPaymentGatewayRejected) {
			t.Fatalf("expected ErrPaymentGatewayRejected, got %v", err)
		}
	})
}

func TestStkPushUseCase_Environment(t *testing.T) {
	if NewStkPushUseCase(nil, testDefaults).Environment() != "" {
		t.Fatalf("expected empty environment without gateway")
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	gateway.EXPECT().Environment().Return("production")

	if got := NewStkPushUseCase(gateway, testDefaults).Environment(); got != "production" {
		t.Fatalf("expected production, got %s", got)
	}
}

func TestNormalizePhoneNumber(t *testing.T) {
	valid := map[string]string{
		"0712345678":      "254712345678",
		"0112345678":      "254112345678",
		"+254712345678":   "254712345678",
		"254712345678":    "254712345678",
		"712345678":       "254712345678",
		"0712 345 678":    "254712345678",
		"+254-712-345678": "254712345678",
	}
	for in, want := range valid {
		got, err := NormalizePhoneNumber(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s err=%v", in, want, got, err)
		}
	}

	for _, in := range []string{"", "12345", "0812345678", "25471234567", "2547123456789", "abc"} {
		if _, err := NormalizePhoneNumber(in); !errors.Is(err, ErrInvalidPhoneNumber) {
			t.Fatalf("%q: expected ErrInvalidPhoneNumber, got %v", in, err)
		}
	}
}
