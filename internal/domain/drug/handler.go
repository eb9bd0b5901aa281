package drug

import (
	"errors"
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
	e.GET("/drugs", h.List)
	e.POST("/drugs", h.Create)
}

func (h *Handler) List(c echo.Context) error {
	drugs, err := h.svc.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, drugs)
}

type createRequest struct {
	Name         string `json:"name"`
	Strength     string `json:"strength"`
	Instructions string `json:"instructions"`
	Warnings     string `json:"warnings"`
}

type createResponse struct {
	Message string `json:"message"`
	Drug    *Drug  `json:"drug"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must be JSON")
	}

	d := &Drug{
		Name:         req.Name,
		Strength:     req.Strength,
		Instructions: req.Instructions,
		Warnings:     req.Warnings,
	}
	err := h.svc.Create(c.Request().Context(), d)
	if errors.Is(err, ErrMissingField) {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Missing required fields: name, strength, instructions, warnings")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, createResponse{
		Message: "Drug added successfully",
		Drug:    d,
	})
}
