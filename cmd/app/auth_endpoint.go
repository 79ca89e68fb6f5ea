package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/services"
)

type registerRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

type adminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// registerPublic handles unauthenticated registration -> creates "user" role
func registerPublic(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		_, err := authSvc.Register(
			c.Request().Context(),
			req.Email,
			req.Password,
			req.ReferralCode,
		)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message": "registration successful, please check your email",
		})
	}
}

// adminRegister allows admin to create admin accounts
func adminRegister(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(adminRegisterRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}
		id, err := authSvc.RegisterByAdmin(c.Request().Context(), req.Email, req.Password, req.Role)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"authid": id})
	}
}

func loginHandler(authSvc *services.AuthService, tokenTTLHours int) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := bindAndValidate(c, req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := authSvc.Login(
			c.Request().Context(),
			req.Email,
			req.Password,
		)
		if err != nil {
			switch err {
			case services.ErrEmailNotVerified:
				return c.JSON(http.StatusForbidden, echo.Map{
					"error": "email not verified",
				})
			default:
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "invalid credentials",
				})
			}
		}

		token, err := middleware.GenerateToken(
			user.AuthID,
			user.Email,
			user.Role,
			tokenTTLHours,
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token":      token,
			"expires_in": tokenTTLHours * 3600,
			"user": echo.Map{
				"authid":     user.AuthID,
				"email":      user.Email,
				"role":       user.Role,
				"created_at": user.CreatedAt,
			},
		})
	}
}

func verifyEmailHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "token required",
			})
		}

		if err := authSvc.VerifyEmail(
			c.Request().Context(),
			token,
		); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "failed to verify email",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"message": "email verified",
		})
	}
}

func forgotPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Email string `json:"email" validate:"required,email"`
		}
		if err := bindAndValidate(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := authSvc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not send reset email"})
		}

		// same response whether or not the email exists
		return c.JSON(http.StatusOK, echo.Map{
			"message": "if that email is registered, a reset link has been sent",
		})
	}
}

func resetPasswordHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			Token       string `json:"token" validate:"required"`
			NewPassword string `json:"new_password" validate:"required,min=8"`
		}
		if err := bindAndValidate(c, &req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
		}

		if err := authSvc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
	}
}

// meHandler returns the authenticated user's info
func meHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"authid": claims.AuthID,
			"email":  claims.Email,
			"role":   claims.Role,
			"exp":    claims.ExpiresAt,
		})
	}
}

func adminListUsers(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := authSvc.Users.ListUsersOnly(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not list users"})
		}
		return c.JSON(http.StatusOK, users)
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, tokenTTLHours int) {
	auth := g.Group("/auth")

	// public
	auth.POST("/register", registerPublic(authSvc))
	auth.POST("/login", loginHandler(authSvc, tokenTTLHours))
	auth.GET("/verify-email", verifyEmailHandler(authSvc))
	auth.POST("/forgot-password", forgotPasswordHandler(authSvc))
	auth.POST("/reset-password", resetPasswordHandler(authSvc))

	// authenticated
	protected := auth.Group("")
	protected.Use(middleware.SessionGate())
	protected.GET("/me", meHandler())

	// admin-only
	admin := auth.Group("/admin")
	admin.Use(
		middleware.SessionGate(),
		middleware.AdminOnly,
	)
	admin.POST("/register", adminRegister(authSvc))
	admin.GET("/users", adminListUsers(authSvc))
}
