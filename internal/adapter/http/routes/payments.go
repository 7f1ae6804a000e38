package routes

import (
	"daraja_stk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathStkPush     = "/stk-push"
	PathEnvironment = "/environment"
)

func addPaymentRoutes(rg *gin.RouterGroup, stkPushHandler *handlers.StkPushHandler, idempotency gin.HandlerFunc) {
	stk := rg.Group(PathStkPush)
	{
		stk.POST("", idempotency, stkPushHandler.InitiateStkPush)
		stk.GET("/:checkout_request_id", stkPushHandler.GetStkPushStatus)
	}

	rg.GET(PathEnvironment, stkPushHandler.GetEnvironment)
}
