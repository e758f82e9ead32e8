package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bakehub/internal/handler"
	appmw "bakehub/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// 各ハンドラーとルート登録に要るもの
type Deps struct {
	Guards    handler.Guards
	Auth      *handler.AuthHandler
	Bakery    *handler.BakeryHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Payout    *handler.PayoutHandler
	User      *handler.UserHandler
	Message   *handler.MessageHandler
	Analytics *handler.AnalyticsHandler
	AuditLog  *handler.AuditLogHandler

	Log          *zap.Logger
	CORSOrigins  []string
	RateLimitRPS float64
	UploadsDir   string // ローカル保存のときだけ配信する
	UploadsURL   string
}

type Server struct {
	echo *echo.Echo
	log  *zap.Logger
}

func New(d Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(appmw.RequestLogger(d.Log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if d.UploadsDir != "" {
		e.Static(d.UploadsURL, d.UploadsDir)
	}

	api := e.Group("/api")

	// /auth だけIPごとに絞る
	limiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(d.RateLimitRPS)))
	d.Auth.RegisterRoutes(api, limiter)

	d.Bakery.RegisterRoutes(api, d.Guards)
	d.Product.RegisterRoutes(api, d.Guards)
	d.Order.RegisterRoutes(api, d.Guards)
	d.Payout.RegisterRoutes(api, d.Guards)
	d.User.RegisterRoutes(api, d.Guards)
	d.Message.RegisterRoutes(api, d.Guards)
	d.Analytics.RegisterRoutes(api, d.Guards)
	d.AuditLog.RegisterRoutes(api, d.Guards)

	return &Server{echo: e, log: d.Log}
}

// テストからも使う
func (s *Server) Handler() http.Handler { return s.echo }

// Shutdownされるまで戻らない
func (s *Server) Start(addr string) error {
	hs := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.log.Info("http server listening", zap.String("addr", addr))
	if err := s.echo.StartServer(hs); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
