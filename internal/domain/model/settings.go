package model

import "time"

// StoreSettings is the store-wide configuration record: pickup details and
// contact info shown on confirmations. Exactly one row exists; it is loaded
// once at startup and handed out by reference rather than re-read per call.
type StoreSettings struct {
	PickupLocation string
	PickupDate     time.Time
	PickupTime     string
	PickupDaysInfo string
	StorePhone     string
	StoreEmail     string
	UpdatedAt      time.Time
}

// PickupInfo is the customer-facing slice of the settings.
type PickupInfo struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Days     string `json:"days"`
}

// Pickup extracts pickup info for order confirmations.
func (s StoreSettings) Pickup() PickupInfo {
	return PickupInfo{
		Location: s.PickupLocation,
		Date:     s.PickupDate.Format("2006-01-02"),
		Time:     s.PickupTime,
		Days:     s.PickupDaysInfo,
	}
}
