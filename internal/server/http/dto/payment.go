package dto

// InitiatePaymentResponse reports the accepted push request.
type InitiatePaymentResponse struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	Message           string `json:"message"`
}

// PaymentStatusResponse reports the state of the session's in-flight payment.
type PaymentStatusResponse struct {
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	Order       *OrderResponse `json:"order,omitempty"`
}

// CallbackAck is the acknowledgement the payment provider expects. Field
// names follow the provider's wire format.
type CallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}
