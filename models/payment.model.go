package models

// GatewayOrder is the payment provider's order reservation, echoed to the
// client for checkout. Amount is in the gateway's minor currency units.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
