package main

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

type subscriptionRequest struct {
	Name         string  `json:"name" validate:"required"`
	DurationDays int     `json:"duration_days" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"gte=0"`
}

// registerSubscriptionRoutes is the admin CRUD over the subscriptions
// table. The public surface reads plans from the catalog instead.
func registerSubscriptionRoutes(g *echo.Group, subRepo *repository.SubscriptionRepository) {
	s := g.Group("/subscriptions")
	s.Use(
		middleware.SessionGate(),
		middleware.AdminOnly,
	)

	s.GET("", func(c echo.Context) error {
		subs, err := subRepo.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list subscriptions"})
		}
		return c.JSON(http.StatusOK, subs)
	})

	s.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
		}
		sub, err := subRepo.GetByID(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load subscription"})
		}
		if sub == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "subscription not found"})
		}
		return c.JSON(http.StatusOK, sub)
	})

	s.POST("", func(c echo.Context) error {
		req := new(subscriptionRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := subRepo.Create(c.Request().Context(), &model.Subscription{
			Name:         req.Name,
			DurationDays: req.DurationDays,
			Price:        req.Price,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create subscription"})
		}
		return c.JSON(http.StatusCreated, echo.Map{"subscriptionid": id})
	})

	s.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
		}
		req := new(subscriptionRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		if err := subRepo.Update(c.Request().Context(), &model.Subscription{
			SubscriptionID: id,
			Name:           req.Name,
			DurationDays:   req.DurationDays,
			Price:          req.Price,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update subscription"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "subscription updated"})
	})

	s.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid subscription id"})
		}
		if err := subRepo.Delete(c.Request().Context(), id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete subscription"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "subscription deleted"})
	})
}
