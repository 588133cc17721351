package models

// Pack is a purchasable bundle of product slots. Amount is in paise.
type Pack struct {
	ID     string `json:"id" mapstructure:"id"`
	Amount int64  `json:"amount" mapstructure:"amount"`
	Slots  int    `json:"slots" mapstructure:"slots"`
}

// PaymentOrder is the subset of a Razorpay order this service relies on
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
