package http

import (
	"errors"
	"fmt"
	"net/http"

	"fleetdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// StatusFor maps an error kind to the HTTP status returned to clients.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusUnprocessableEntity
	case errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusConflict
	case errs.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case errs.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler renders every error returned by a handler as an Error
// body. Internal errors are logged and their message is not exposed.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := Error{}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			body.Code = he.Code
			body.Kind = kindForStatus(he.Code)
			body.Message = fmt.Sprint(he.Message)
		} else {
			kind := errs.KindOf(err)
			body.Code = StatusFor(kind)
			body.Kind = kind.String()
			body.Message = err.Error()
		}

		if body.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			body.Message = http.StatusText(body.Code)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusNotFound:
		return errs.KindNotFound.String()
	case http.StatusConflict:
		return errs.KindConflict.String()
	case http.StatusPreconditionFailed:
		return errs.KindPreconditionFailed.String()
	}
	if code >= http.StatusInternalServerError {
		return errs.KindInternal.String()
	}
	return errs.KindValidation.String()
}
