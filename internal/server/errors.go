package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ragingtiger/amznbot/pkg/logger"
)

type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// errorHandler answers every failure with the same JSON shape as /health.
// Errors that are not *echo.HTTPError are logged and reported as a bare 500.
func errorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		} else {
			log.Errorw("unhandled error", "uri", c.Request().RequestURI, "error", err)
		}

		resp := errorResponse{Status: "error", Error: http.StatusText(code)}
		if he != nil && he.Message != nil {
			resp.Error = fmt.Sprint(he.Message)
		}
		if werr := c.JSON(code, resp); werr != nil {
			log.Errorw("failed to write error response", "error", werr)
		}
	}
}
