package main

import (
	"context"
	"fmt"
	"time"

	"bakehub/internal/handler"
	"bakehub/internal/infra/cache"
	"bakehub/internal/infra/db"
	"bakehub/internal/infra/mail"
	infraRepo "bakehub/internal/infra/repository"
	"bakehub/internal/infra/storage"
	"bakehub/internal/infra/token"
	"bakehub/internal/middleware"
	"bakehub/internal/notification"
	"bakehub/internal/server"
	"bakehub/internal/usecase"
	auth "bakehub/internal/usecase/auth_usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	b, err := bootstrap()
	if err != nil {
		return err
	}
	defer b.close()
	cfg, log := b.cfg, b.log

	if err := db.Migrate(b.db); err != nil {
		return err
	}

	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	//Repository（GORM実装）
	txm := infraRepo.NewTxManagerGorm(b.db)
	userRepo := infraRepo.NewUserGormRepository(b.db)
	bakeryRepo := infraRepo.NewBakeryGormRepository(b.db)
	productRepo := infraRepo.NewProductGormRepository(b.db)
	orderRepo := infraRepo.NewOrderGormRepository(b.db)
	payoutRepo := infraRepo.NewPayoutGormRepository(b.db)
	messageRepo := infraRepo.NewMessageGormRepository(b.db)
	resetRepo := infraRepo.NewPasswordResetRepository(b.db)
	auditRepo := infraRepo.NewAuditLogGormRepository(b.db)
	otpStore := cache.NewOTPRedisStore(rdb)

	//メール。注文通知だけ非同期
	mailer := mail.NewSMTPMailer(cfg.Mail)
	dispatcher := notification.NewDispatcher(mailer, log, cfg.Notify.Workers, cfg.Notify.QueueSize)

	clock := usecase.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := token.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	//Usecase
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, bakeryRepo, userRepo, dispatcher, clock, log)
	payoutUC := usecase.NewPayoutUsecase(txm, orderRepo, bakeryRepo, payoutRepo, clock, log)
	analyticsUC := usecase.NewAnalyticsUsecase(orderRepo, bakeryRepo, log)
	bakeryUC := usecase.NewBakeryUsecase(txm, bakeryRepo, files, clock, log)
	productUC := usecase.NewProductUsecase(productRepo, bakeryRepo, files, log)
	userUC := usecase.NewUserUsecase(userRepo, hasher, verifier, files, log)
	messageUC := usecase.NewMessageUsecase(messageRepo, mailer, clock, log)
	auditUC := usecase.NewAuditLogUsecase(auditRepo, log)

	otpUC := auth.NewOTPUsecase(userRepo, otpStore, mailer, clock, log)
	registerUC := auth.NewRegisterUserUsecase(txm, userRepo, otpStore, hasher, clock, log)
	loginUC := auth.NewLoginUsecase(userRepo, bakeryRepo, verifier, issuer, clock, log)
	resetUC := auth.NewPasswordResetUsecase(userRepo, resetRepo, hasher, mailer, clock, cfg.FrontendURL, log)
	lookupUC := auth.NewLookupUsecase(userRepo, log)

	guards := handler.Guards{
		Auth:     middleware.AuthJWT(issuer),
		Account:  middleware.AccountGuard(userRepo),
		Optional: middleware.OptionalAuthJWT(issuer),
	}

	deps := server.Deps{
		Guards:       guards,
		Auth:         handler.NewAuthHandler(otpUC, registerUC, loginUC, resetUC, lookupUC),
		Bakery:       handler.NewBakeryHandler(bakeryUC),
		Product:      handler.NewProductHandler(productUC),
		Order:        handler.NewOrderHandler(orderUC),
		Payout:       handler.NewPayoutHandler(payoutUC),
		User:         handler.NewUserHandler(userUC),
		Message:      handler.NewMessageHandler(messageUC),
		Analytics:    handler.NewAnalyticsHandler(analyticsUC),
		AuditLog:     handler.NewAuditLogHandler(auditUC),
		Log:          log,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimitRPS: cfg.RateLimitRPS,
	}
	if local, ok := files.(*storage.LocalStorage); ok {
		deps.UploadsDir = local.Root()
		deps.UploadsURL = cfg.Storage.PublicURL
	}
	srv := server.New(deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(":" + cfg.Port)
	}()

	if err := waitForStop(ctx, errCh, log); err != nil {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	// 受付を止めてから溜まった通知を流し切る
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn("notification drain", zap.Error(err))
	}
	return nil
}

// サーバ停止かシグナルのどちらか先に来た方を待つ。
// シグナル前にStartがnilで戻った場合も黙って終わらせない
func waitForStop(ctx context.Context, errCh <-chan error, log *zap.Logger) error {
	select {
	case err := <-errCh:
		if err != nil {
			log.Error("http server failed", zap.Error(err))
			return err
		}
		log.Warn("http server stopped before shutdown signal")
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}
	return nil
}
