package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dowody/rw-sub000/internal/cart"
	"github.com/Dowody/rw-sub000/internal/middleware"
	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/services"
)

type nullPersister struct{}

func (nullPersister) Save(context.Context, int64, []model.CartItem) error { return nil }

func (nullPersister) Load(context.Context, int64) ([]model.CartItem, error) { return nil, nil }

func (nullPersister) Delete(context.Context, int64) error { return nil }

func TestCheckoutEmptyCartRedirectsToPurchases(t *testing.T) {
	// an empty cart is rejected before any repository call, so the
	// service needs nothing but the store
	checkout := services.NewCheckoutService(
		cart.NewStore(nullPersister{}),
		nil, nil, nil, nil, nil, nil,
		zerolog.Nop(),
	)

	e := echo.New()
	api := e.Group("/api")
	registerCheckoutRoutes(api, checkout, nil)

	token, err := middleware.GenerateToken(7, "user@example.com", "user", 1)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, services.DashboardPath+"?section=purchases", body["redirect_to"])
	assert.NotEmpty(t, body["message"])
}
