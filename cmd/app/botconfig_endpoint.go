package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/services"
)

type botConfigRequest struct {
	Name               string  `json:"name" validate:"required"`
	Exchange           string  `json:"exchange" validate:"required"`
	APIKey             string  `json:"api_key" validate:"required"`
	MinWithdrawal      float64 `json:"min_withdrawal" validate:"gte=0"`
	DestinationAddress string  `json:"destination_address" validate:"required"`
	Schedule           string  `json:"schedule" validate:"required"`
	Active             bool    `json:"active"`
}

func configIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func registerBotConfigRoutes(g *echo.Group, bots *services.BotConfigService) {
	b := g.Group("/bot-configs")
	b.Use(middleware.SessionGate())

	b.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		list, err := bots.List(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list configurations"})
		}
		return c.JSON(http.StatusOK, list)
	})

	b.GET("/:id", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		id, err := configIDParam(c)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid configuration id"})
		}
		cfg, err := bots.Get(c.Request().Context(), cl.AuthID, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "configuration not found"})
		}
		return c.JSON(http.StatusOK, cfg)
	})

	b.POST("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		req := new(botConfigRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		id, err := bots.Create(c.Request().Context(), cl.AuthID, &model.BotConfig{
			Name:               req.Name,
			Exchange:           req.Exchange,
			APIKey:             req.APIKey,
			MinWithdrawal:      req.MinWithdrawal,
			DestinationAddress: req.DestinationAddress,
			Schedule:           req.Schedule,
			Active:             req.Active,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"configid": id})
	})

	b.PUT("/:id", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		id, err := configIDParam(c)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid configuration id"})
		}
		req := new(botConfigRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := bots.Update(c.Request().Context(), cl.AuthID, &model.BotConfig{
			ConfigID:           id,
			Name:               req.Name,
			Exchange:           req.Exchange,
			APIKey:             req.APIKey,
			MinWithdrawal:      req.MinWithdrawal,
			DestinationAddress: req.DestinationAddress,
			Schedule:           req.Schedule,
			Active:             req.Active,
		}); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "configuration updated"})
	})

	b.DELETE("/:id", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		id, err := configIDParam(c)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid configuration id"})
		}
		if err := bots.Delete(c.Request().Context(), cl.AuthID, id); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "configuration deleted"})
	})
}
