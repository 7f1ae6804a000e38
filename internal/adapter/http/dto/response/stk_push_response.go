package response

import (
	"time"

	"daraja_stk/internal/domain/entities"
)

type StkPushResponse struct {
	MerchantRequestID   string    `json:"merchant_request_id"`
	CheckoutRequestID   string    `json:"checkout_request_id"`
	ResponseCode        string    `json:"response_code"`
	ResponseDescription string    `json:"response_description"`
	CustomerMessage     string    `json:"customer_message"`
	Environment         string    `json:"environment"`
	RequestedAt         time.Time `json:"requested_at"`
}

func FromStkPushInitiation(i entities.StkPushInitiation) StkPushResponse {
	return StkPushResponse{
		MerchantRequestID:   i.MerchantRequestID,
		CheckoutRequestID:   i.CheckoutRequestID,
		ResponseCode:        i.ResponseCode,
		ResponseDescription: i.ResponseDescription,
		CustomerMessage:     i.CustomerMessage,
		Environment:         i.Environment,
		RequestedAt:         i.RequestedAt,
	}
}

type StkPushStatusResponse struct {
	MerchantRequestID   string `json:"merchant_request_id,omitempty"`
	CheckoutRequestID   string `json:"checkout_request_id"`
	ResponseCode        string `json:"response_code,omitempty"`
	ResponseDescription string `json:"response_description,omitempty"`
	ResultCode          string `json:"result_code,omitempty"`
	ResultDesc          string `json:"result_desc,omitempty"`
	Status              string `json:"status"`
}

func FromStkPushStatus(s entities.StkPushStatus) StkPushStatusResponse {
	return StkPushStatusResponse{
		MerchantRequestID:   s.MerchantRequestID,
		CheckoutRequestID:   s.CheckoutRequestID,
		ResponseCode:        s.ResponseCode,
		ResponseDescription: s.ResponseDescription,
		ResultCode:          s.ResultCode,
		ResultDesc:          s.ResultDesc,
		Status:              string(s.Outcome),
	}
}

type EnvironmentResponse struct {
	Environment string `json:"environment"`
}
