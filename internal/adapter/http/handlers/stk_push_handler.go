package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"daraja_stk/internal/adapter/http/dto/request"
	"daraja_stk/internal/adapter/http/dto/response"
	"daraja_stk/internal/usecase"
	"daraja_stk/pkg"

	"github.com/gin-gonic/gin"
)

// StkPushHandler handles HTTP requests for M-Pesa STK push payments.

type StkPushHandler struct {
	usecase usecase.IStkPushUseCase
}

func NewStkPushHandler(uc usecase.IStkPushUseCase) *StkPushHandler {
	return &StkPushHandler{usecase: uc}
}

// InitiateStkPush godoc
// @Summary      Initiate an STK push
// @Description  Prompts the payer's phone to authorize a PayBill payment. Send an Idempotency-Key header to make retries safe.
// @Tags         stk-push
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                   false  "Client generated key"
// @Param        request          body      request.StkPushRequest   true   "STK push request"
// @Success      200              {object}  response.StkPushResponse
// @Failure      400              {object}  pkg.HTTPError
// @Failure      401              {object}  pkg.HTTPError
// @Failure      409              {object}  pkg.HTTPError
// @Failure      502              {object}  pkg.HTTPError
// @Failure      503              {object}  pkg.HTTPError
// @Router       /stk-push [post]
func (h *StkPushHandler) InitiateStkPush(c *gin.Context) {
	var req request.StkPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[stk][handler] invalid payload err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[stk][handler] initiate start reference=%s", req.AccountReference)

	res, err := h.usecase.Initiate(c.Request.Context(), req.ToCommand())
	if err != nil {
		log.Printf("[stk][handler] initiate failed reference=%s err=%v", req.AccountReference, err)
		appErr := mapStkPushError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[stk][handler] initiate success reference=%s checkout_request_id=%s", req.AccountReference, res.CheckoutRequestID)

	c.JSON(http.StatusOK, response.FromStkPushInitiation(res))
}

// GetStkPushStatus godoc
// @Summary      Query an STK push
// @Description  Asks the provider for the state of a previously initiated STK push.
// @Tags         stk-push
// @Produce      json
// @Param        checkout_request_id  path      string  true  "CheckoutRequestID returned on initiation"
// @Success      200                  {object}  response.StkPushStatusResponse
// @Failure      400                  {object}  pkg.HTTPError
// @Failure      502                  {object}  pkg.HTTPError
// @Router       /stk-push/{checkout_request_id} [get]
func (h *StkPushHandler) GetStkPushStatus(c *gin.Context) {
	checkoutRequestID := c.Param("checkout_request_id")
	log.Printf("[stk][handler] query start checkout_request_id=%s", checkoutRequestID)

	status, err := h.usecase.QueryStatus(c.Request.Context(), checkoutRequestID)
	if err != nil {
		log.Printf("[stk][handler] query failed checkout_request_id=%s err=%v", checkoutRequestID, err)
		appErr := mapStkPushError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[stk][handler] query success checkout_request_id=%s status=%s", checkoutRequestID, status.Outcome)

	c.JSON(http.StatusOK, response.FromStkPushStatus(status))
}

// GetEnvironment godoc
// @Summary      Active Daraja environment
// @Tags         stk-push
// @Produce      json
// @Success      200  {object}  response.EnvironmentResponse
// @Router       /environment [get]
func (h *StkPushHandler) GetEnvironment(c *gin.Context) {
	c.JSON(http.StatusOK, response.EnvironmentResponse{Environment: h.usecase.Environment()})
}

func mapStkPushError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amount must be a positive whole number", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPhoneNumber):
		return pkg.NewDomainErrorSimple("INVALID_PHONE_NUMBER", "Phone number must be a Safaricom number such as 0712345678 or 254712345678", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCallbackURL):
		return pkg.NewDomainErrorSimple("INVALID_CALLBACK_URL", "Callback URL must be an absolute http(s) URL", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAccountReference):
		return pkg.NewDomainErrorSimple("INVALID_ACCOUNT_REFERENCE", "Account reference must be 1 to 12 characters", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransactionDesc):
		return pkg.NewDomainErrorSimple("INVALID_TRANSACTION_DESC", "Transaction description must be at most 13 characters", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCheckoutRequestID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMissingShortCode):
		return pkg.NewDomainErrorSimple("MERCHANT_NOT_CONFIGURED", "Business short code or passkey not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayRejected):
		return pkg.NewDomainError("PAYMENT_PROVIDER_REJECTED", providerMessage(err, "Payment provider rejected the request"), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnavailable):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// providerMessage returns the text the provider attached to a rejection.
func providerMessage(err error, fallback string) string {
	prefix := usecase.ErrPaymentGatewayRejected.Error() + ": "
	if msg := err.Error(); strings.HasPrefix(msg, prefix) && len(msg) > len(prefix) {
		return msg[len(prefix):]
	}
	return fallback
}
