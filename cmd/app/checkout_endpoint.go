package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/services"
)

// registerCheckoutRoutes places orders. When a payment service is
// configured the response also carries a hosted payment link.
func registerCheckoutRoutes(g *echo.Group, checkout *services.CheckoutService, payments *services.PaymentService) {
	co := g.Group("/checkout")
	co.Use(middleware.SessionGate())

	co.POST("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		result, err := checkout.PlaceOrder(c.Request().Context(), cl.AuthID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyCart):
				// nothing to buy, send the client back to their purchases
				return c.JSON(http.StatusOK, echo.Map{
					"redirect_to": services.DashboardPath + "?section=purchases",
					"message":     "your cart is empty",
				})
			case errors.Is(err, services.ErrMultipleSubscriptions),
				errors.Is(err, services.ErrActiveSubscription),
				errors.Is(err, services.ErrNoMatchingSubscription):
				return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
			default:
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"error": "checkout failed, please try again",
				})
			}
		}

		if payments != nil {
			// the order is already complete; a payment link failure
			// should not fail the checkout response
			if url, err := payments.CreateSnapPayment(c.Request().Context(), result.OrderID, cl.AuthID); err == nil {
				result.PaymentURL = url
			}
		}

		return c.JSON(http.StatusCreated, result)
	})
}
