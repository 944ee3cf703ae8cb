package controllers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"farmmarket/apperr"
	"farmmarket/utils"
)

// PaymentController creates payment orders with the external gateway.
type PaymentController struct {
	Gateway utils.PaymentGateway
}

// NewPaymentController creates a new PaymentController.
func NewPaymentController(gateway utils.PaymentGateway) *PaymentController {
	return &PaymentController{Gateway: gateway}
}

type createOrderRequest struct {
	Amount float64 `json:"amount"`
}

// CreateOrder converts the amount to minor currency units and requests an
// order reservation from the gateway.
func (pc *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	receipt := "order_rcptid_" + uuid.NewString()
	order, err := pc.Gateway.CreateOrder(ctx, int64(math.Round(req.Amount*100)), "INR", receipt)
	if err != nil {
		writeAppError(w, apperr.Dependency("Server error", err))
		return
	}

	writeJSON(w, http.StatusOK, order)
}
