package dto

import "time"

// SettingsRequest updates the store-wide settings record.
type SettingsRequest struct {
	PickupLocation string `json:"pickup_location"`
	PickupDate     string `json:"pickup_date"`
	PickupTime     string `json:"pickup_time"`
	PickupDaysInfo string `json:"pickup_days_info"`
	StorePhone     string `json:"store_phone"`
	StoreEmail     string `json:"store_email"`
}

// SettingsResponse describes the store-wide settings record.
type SettingsResponse struct {
	PickupLocation string    `json:"pickup_location"`
	PickupDate     string    `json:"pickup_date"`
	PickupTime     string    `json:"pickup_time"`
	PickupDaysInfo string    `json:"pickup_days_info"`
	StorePhone     string    `json:"store_phone"`
	StoreEmail     string    `json:"store_email"`
	UpdatedAt      time.Time `json:"updated_at"`
}
