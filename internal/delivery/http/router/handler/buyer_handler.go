package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BuyerHandler holds dependencies for buyer dashboard handlers.
type BuyerHandler struct {
	buyers usecase.BuyerUsecase
}

// NewBuyerHandler is the constructor for BuyerHandler, injected by Fx.
func NewBuyerHandler(buyers usecase.BuyerUsecase) *BuyerHandler {
	return &BuyerHandler{buyers: buyers}
}

// Marketplace lists available crops with seller details. The optional
// "search" query filters by name, category, location or farmer name.
func (h *BuyerHandler) Marketplace(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.buyers.Marketplace(c.Request().Context(), userID, c.QueryParam("search"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Marketplace retrieved")
}

// MyTrades lists the buyer's purchase history, newest first.
func (h *BuyerHandler) MyTrades(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	trades, err := h.buyers.MyTrades(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, trades, "Trades retrieved")
}
