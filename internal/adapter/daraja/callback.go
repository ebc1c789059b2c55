package daraja

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
)

// Result codes delivered by the provider in reconciliation callbacks.
const (
	resultCodeSuccess   = 0
	resultCodeCancelled = 1032
)

type callbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string          `json:"Name"`
					Value json.RawMessage `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ParseCallback decodes a reconciliation callback into a payment result.
func ParseCallback(r io.Reader) (model.PaymentResult, error) {
	var envelope callbackEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return model.PaymentResult{}, fmt.Errorf("decode callback: %w", err)
	}

	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return model.PaymentResult{}, fmt.Errorf("callback missing checkout request id")
	}

	result := model.PaymentResult{
		CheckoutRequestID: cb.CheckoutRequestID,
		Description:       cb.ResultDesc,
	}
	switch cb.ResultCode {
	case resultCodeSuccess:
		result.Status = model.PaymentStatusSuccess
	case resultCodeCancelled:
		result.Status = model.PaymentStatusCancelled
	default:
		result.Status = model.PaymentStatusFailed
	}

	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			// Decoded as a string to keep the settled amount exact; going
			// through float64 would round it.
			var amount json.Number
			if err := json.Unmarshal(item.Value, &amount); err == nil {
				if d, err := decimal.NewFromString(amount.String()); err == nil {
					result.Amount = &d
				}
			}
		case "MpesaReceiptNumber":
			var receipt string
			if err := json.Unmarshal(item.Value, &receipt); err == nil {
				result.ReceiptCode = receipt
			}
		case "TransactionDate":
			var raw int64
			if err := json.Unmarshal(item.Value, &raw); err == nil {
				if ts, err := time.ParseInLocation(timestampLayout, fmt.Sprintf("%d", raw), time.Local); err == nil {
					result.SettledAt = &ts
				}
			}
		}
	}
	return result, nil
}
