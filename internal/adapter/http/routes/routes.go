package routes

import (
	"context"
	"log"
	"strconv"

	_ "daraja_stk/docs" // This will be auto-generated
	"daraja_stk/internal/adapter/http/handlers"
	"daraja_stk/internal/adapter/http/middleware"
	"daraja_stk/internal/adapter/persistence/repository"
	"daraja_stk/internal/infrastructure/config"
	"daraja_stk/internal/infrastructure/database"
	"daraja_stk/internal/infrastructure/payments"
	"daraja_stk/internal/usecase"
	"daraja_stk/internal/usecase/interfaces"
	"daraja_stk/pkg/daraja"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.New()

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setMiddlewares(router)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := getRoutes(context.Background(), router, cfg); err != nil {
		log.Fatalf("Failed to wire routes: %v", err)
	}

	err = router.Run(":" + strconv.Itoa(cfg.Port))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes(ctx context.Context, r *gin.Engine, cfg *config.Config) error {
	idempotencyRepo, err := newIdempotencyRepository(ctx, cfg)
	if err != nil {
		return err
	}

	var paymentGateway interfaces.IPaymentGateway
	darajaGateway, err := payments.NewDarajaGateway(
		daraja.Config{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
			Timeout:        cfg.Timeout,
		},
		cfg.Environment,
		daraja.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		log.Printf("Daraja gateway not configured: %v", err)
	} else {
		paymentGateway = darajaGateway
	}

	stkPushUseCase := usecase.NewStkPushUseCase(paymentGateway, usecase.StkPushDefaults{
		BusinessShortCode: cfg.ShortCode,
		PassKey:           cfg.PassKey,
		CallbackURL:       cfg.CallbackURL,
	})
	stkPushHandler := handlers.NewStkPushHandler(stkPushUseCase)

	// Public routes
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, stkPushHandler, middleware.Idempotency(idempotencyRepo, cfg.IdempotencyTTL))
	return nil
}

func newIdempotencyRepository(ctx context.Context, cfg *config.Config) (interfaces.IIdempotencyRepository, error) {
	if cfg.IdempotencyStore != config.IdempotencyStoreDynamoDB {
		repo := repository.NewIdempotencyMemoryRepository()
		repo.StartSweeper(ctx, 0)
		log.Printf("[idempotency][store] using memory ttl=%s", cfg.IdempotencyTTL)
		return repo, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx)
	if err != nil {
		return nil, err
	}
	repo := repository.NewIdempotencyDynamoRepository(ddb, cfg.IdempotencyTable)
	if err := database.EnsureIdempotencyTable(ctx, ddb, repo.TableName()); err != nil {
		log.Printf("[idempotency][store] table check failed table=%s err=%v", repo.TableName(), err)
	}
	log.Printf("[idempotency][store] using dynamodb table=%s ttl=%s", repo.TableName(), cfg.IdempotencyTTL)
	return repo, nil
}

func setMiddlewares(r *gin.Engine) {
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
