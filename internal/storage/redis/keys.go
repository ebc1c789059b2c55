package redis

import "time"

const (
	// Visitor cart: cart:{session_id} -> JSON Cart
	keyCart = "cart:%s"

	// Checkout snapshot bridging payment initiation to completion:
	// checkout:{checkout_request_id} -> JSON CheckoutSnapshot
	keyCheckoutSnapshot = "checkout:%s"

	// Pending payment reference for a session:
	// pending_payment:{session_id} -> checkout_request_id
	keyPendingPayment = "pending_payment:%s"
)

var (
	// Carts outlive browsing pauses but not forgotten visitors.
	TTLCart = 72 * time.Hour

	// Default payment window when config omits one. Snapshot and payment
	// reference keys are stored for twice the window so a callback that
	// lands after the last poll can still settle.
	DefaultTTLCheckout = 15 * time.Minute
)
