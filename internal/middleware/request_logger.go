package middleware

import (
	"strconv"
	"time"

	"bakehub/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CtxRequestIDKey = "request_id"
	CtxLoggerKey    = "logger"
)

// リクエストIDを振って、1リクエスト1行のログと指標を残す
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Set(CtxRequestIDKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			reqLog := log.With(zap.String("request_id", requestID))
			c.Set(CtxLoggerKey, reqLog)

			err := next(c)
			if err != nil {
				// echoのエラーハンドラに書かせてstatusを確定させる
				c.Error(err)
			}

			cost := time.Since(start)
			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.HTTPRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(c.Request().Method, route).Observe(cost.Seconds())

			reqLog.Info(c.Request().URL.Path,
				zap.Int("status", status),
				zap.String("method", c.Request().Method),
				zap.String("route", route),
				zap.String("query", c.Request().URL.RawQuery),
				zap.String("ip", c.RealIP()),
				zap.String("user-agent", c.Request().UserAgent()),
				zap.Duration("cost", cost),
			)
			return nil
		}
	}
}

// handlerから使う。無ければ何も出さないロガー
func LoggerFrom(c echo.Context) *zap.Logger {
	if l, ok := c.Get(CtxLoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
