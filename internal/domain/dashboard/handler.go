package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/dashboard/notifications", h.Notifications)
	e.GET("/dashboard/statistics/drug_prescriptions", h.DrugStatistics)
}

func (h *Handler) Notifications(c echo.Context) error {
	items, err := h.svc.PendingNotifications(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DrugStatistics(c echo.Context) error {
	stats, err := h.svc.DrugStatistics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, stats)
}
