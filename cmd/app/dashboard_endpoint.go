package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/services"
)

func registerDashboardRoutes(g *echo.Group, dash *services.DashboardService) {
	d := g.Group("/dashboard")
	d.Use(middleware.SessionGate())

	d.GET("/summary", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		summary, err := dash.GetSummary(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not load dashboard",
			})
		}
		return c.JSON(http.StatusOK, summary)
	})

	d.GET("/billing", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		history, err := dash.BillingHistory(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not load billing history",
			})
		}
		return c.JSON(http.StatusOK, history)
	})
}
