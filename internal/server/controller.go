package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ragingtiger/amznbot/internal/usecase"
)

type StatusProvider interface {
	State() usecase.State
}

type Controller interface {
	Health(c echo.Context) error
}

type controller struct {
	status StatusProvider
}

func NewHandler(status StatusProvider) Controller {
	return &controller{
		status: status,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	State   string `json:"state"`
}

// Health answers 503 until the startup summary has been posted.
func (h *controller) Health(c echo.Context) error {
	state := h.status.State()
	resp := healthResponse{
		Status:  "healthy",
		Service: "amznbot",
		State:   state.String(),
	}
	if state != usecase.StateRunning {
		resp.Status = "starting"
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}
