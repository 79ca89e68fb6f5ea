package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/catalog"
)

// registerPlanRoutes exposes the public plan catalog. No auth: the
// storefront renders these before sign-in.
func registerPlanRoutes(g *echo.Group) {
	p := g.Group("/plans")

	p.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, catalog.Plans())
	})

	p.GET("/:id", func(c echo.Context) error {
		plan, ok := catalog.PlanByID(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown plan"})
		}
		return c.JSON(http.StatusOK, plan)
	})
}
