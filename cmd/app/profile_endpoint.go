package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/services"
)

type updateSettingsRequest struct {
	Username *string `json:"username,omitempty"`
	Currency *string `json:"currency,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

func registerProfileRoutes(g *echo.Group, profiles *services.ProfileService, authSvc *services.AuthService) {
	p := g.Group("/profile")
	p.Use(middleware.SessionGate())

	p.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		profile, err := profiles.GetByAuthID(c.Request().Context(), cl.AuthID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
		}
		return c.JSON(http.StatusOK, profile)
	})

	p.PUT("/settings", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		req := new(updateSettingsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := profiles.UpdateSettings(c.Request().Context(), cl.AuthID, req.Username, req.Currency); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "settings updated"})
	})

	p.POST("/avatar", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		fh, err := c.FormFile("avatar")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "avatar file required"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read avatar file"})
		}
		defer src.Close()

		url, err := profiles.UploadAvatar(
			c.Request().Context(),
			cl.AuthID,
			fh.Filename,
			fh.Header.Get("Content-Type"),
			src,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"avatar_url": url})
	})

	p.POST("/change-password", func(c echo.Context) error {
		cl := middleware.GetClaims(c)

		req := new(changePasswordRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := authSvc.ChangePassword(c.Request().Context(), cl.AuthID, req.CurrentPassword, req.NewPassword); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
	})
}
