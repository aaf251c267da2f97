package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
)

// RequestLogger writes one slog record per request.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// Timeout bounds each request with a deadline. A handler that fails because the
// deadline passed answers 408, whether it returns the raw cause or an already
// mapped *echo.HTTPError.
func Timeout(d time.Duration) echo.MiddlewareFunc {
	return echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: d,
		ErrorHandler: func(err error, c echo.Context) error {
			if !apperrors.IsTimeout(err) {
				return err
			}
			var he *echo.HTTPError
			if errors.As(err, &he) {
				if he.Code == http.StatusRequestTimeout {
					return he
				}
				if he.Internal != nil {
					err = he.Internal
				}
			}
			return apperrors.ToHTTP(err)
		},
	})
}
