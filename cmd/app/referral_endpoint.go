package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/services"
)

func registerReferralRoutes(g *echo.Group, refs *services.ReferralService) {
	r := g.Group("/referrals")
	r.Use(middleware.SessionGate())

	r.GET("/code", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		code, err := refs.GetActiveCode(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load referral code"})
		}
		if code == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no referral code yet"})
		}
		return c.JSON(http.StatusOK, code)
	})

	// generating again deactivates the previous code
	r.POST("/code", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		code, err := refs.GenerateCode(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate referral code"})
		}
		return c.JSON(http.StatusCreated, code)
	})

	r.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		list, err := refs.ListReferrals(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list referrals"})
		}
		return c.JSON(http.StatusOK, list)
	})
}
