package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/maelyb/eclat/eclat-backend/internal/middleware"
)

const testOwner = "owner@example.com"

// setupOwnerContext injects an authenticated owner into the request context,
// mirroring what the auth middleware does after token validation.
func setupOwnerContext(c echo.Context, ownerEmail string) {
	ctx := context.WithValue(c.Request().Context(), middleware.OwnerEmailKey, ownerEmail)
	c.SetRequest(c.Request().WithContext(ctx))
}
