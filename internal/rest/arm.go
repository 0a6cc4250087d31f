package rest

import (
	"context"
	"net/http"
	"time"

	"myDecisionCoach/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ArmService interface {
	ListArms(ctx context.Context) ([]domain.ArmStatistics, error)
}

type ArmHandler struct {
	armService ArmService
	timeout    time.Duration
}

func NewArmHandler(armService ArmService, timeout time.Duration) *ArmHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ArmHandler{
		armService: armService,
		timeout:    timeout,
	}
}

// GET /api/v1/admin/arms
func (h *ArmHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	arms, err := h.armService.ListArms(ctx)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(arms))
}
