package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/cart"
	"github.com/Dowody/rw-sub000/internal/catalog"
	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/model"
)

type addCartItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func cartResponse(c echo.Context, store *cart.Store, authID int64) error {
	return c.JSON(http.StatusOK, model.CartResponse{
		Items: store.Items(c.Request().Context(), authID),
		Total: store.TotalPrice(c.Request().Context(), authID),
	})
}

func registerCartRoutes(g *echo.Group, store *cart.Store) {
	cg := g.Group("/cart")
	cg.Use(middleware.SessionGate())

	cg.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		return cartResponse(c, store, cl.AuthID)
	})

	cg.POST("/items", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		req := new(addCartItemRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		plan, ok := catalog.PlanByID(req.ID)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown plan"})
		}
		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}

		if err := store.Add(c.Request().Context(), cl.AuthID, model.CartItem{
			ID:       plan.ID,
			Name:     plan.Name,
			Price:    plan.Price,
			Quantity: qty,
		}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update cart"})
		}
		return cartResponse(c, store, cl.AuthID)
	})

	cg.PUT("/items/:id", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		req := new(updateQuantityRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		// zero or negative quantity removes the line
		if err := store.UpdateQuantity(c.Request().Context(), cl.AuthID, c.Param("id"), req.Quantity); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update cart"})
		}
		return cartResponse(c, store, cl.AuthID)
	})

	cg.DELETE("/items/:id", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		if err := store.Remove(c.Request().Context(), cl.AuthID, c.Param("id")); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update cart"})
		}
		return cartResponse(c, store, cl.AuthID)
	})

	cg.DELETE("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		if err := store.Clear(c.Request().Context(), cl.AuthID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear cart"})
		}
		return cartResponse(c, store, cl.AuthID)
	})
}
