package main

import (
	"context"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/Dowody/rw-sub000/external/abstractapi"
	"github.com/Dowody/rw-sub000/external/midtrans"
	"github.com/Dowody/rw-sub000/external/resend"
	"github.com/Dowody/rw-sub000/external/s3storage"

	"github.com/Dowody/rw-sub000/internal/cart"
	"github.com/Dowody/rw-sub000/internal/config"
	"github.com/Dowody/rw-sub000/internal/db"
	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/repository"
	"github.com/Dowody/rw-sub000/internal/services"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	middleware.SetSecret(cfg.JWTSecret)

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator(cfg.AbstractEmailAPIKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("email reputation validator")
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	mailer, err := resend.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
	if err != nil {
		logger.Fatal().Err(err).Msg("resend mailer")
	}

	var avatars services.AvatarStorage
	if cfg.AvatarsEnabled() {
		avatars, err = s3storage.NewS3Storage(ctx, s3storage.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			BaseURL:   cfg.S3BaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("s3 storage")
		}
	}

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	subRepo := repository.NewSubscriptionRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	referralRepo := repository.NewReferralRepository(pool)
	botConfigRepo := repository.NewBotConfigRepository(pool)
	verifyRepo := repository.NewEmailVerificationRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	cartStore := cart.NewStore(cart.NewRedisPersister(rdb))
	purchaseFlags := cart.NewFlags(rdb)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo, userRepo, referralRepo, emailValidator, mailer, verifyRepo, resetRepo, cfg.AppBaseURL)
	profileSvc := services.NewProfileService(userRepo, authRepo, avatars)
	checkoutSvc := services.NewCheckoutService(cartStore, purchaseFlags, authRepo, userRepo, subRepo, orderRepo, mailer, logger)
	dashboardSvc := services.NewDashboardService(userRepo, authRepo, orderRepo, subRepo, purchaseFlags)
	referralSvc := services.NewReferralService(referralRepo, userRepo)
	botConfigSvc := services.NewBotConfigService(botConfigRepo, userRepo)

	var paymentSvc *services.PaymentService
	if cfg.PaymentsEnabled() {
		snapClient := midtrans.NewSnapClient(cfg.MidtransServerKey)
		paymentSvc = services.NewPaymentService(paymentRepo, orderRepo, userRepo, snapClient, cfg.MidtransServerKey)
	} else {
		logger.Info().Msg("midtrans server key not set, payment routes disabled")
	}

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, cfg.TokenTTLHours)
	registerPlanRoutes(api)
	registerCartRoutes(api, cartStore)
	registerCheckoutRoutes(api, checkoutSvc, paymentSvc)
	registerDashboardRoutes(api, dashboardSvc)
	registerProfileRoutes(api, profileSvc, authSvc)
	registerReferralRoutes(api, referralSvc)
	registerBotConfigRoutes(api, botConfigSvc)
	registerSubscriptionRoutes(api, subRepo)

	if paymentSvc != nil {
		registerPaymentRoutes(api, paymentSvc)
	}

	// ======================
	// SERVER
	// ======================
	logger.Info().Str("port", cfg.Port).Msg("starting api server")
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
