package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PixRequest describes an instant-payment charge tied to an order.
type PixRequest struct {
	OrderID     string          `json:"orderId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	PayerEmail  string          `json:"payerEmail"`
	PayerName   string          `json:"payerName,omitempty"`
}

// PixPayment is the provider's answer: a scannable QR image plus the
// copy-paste code the customer can use instead.
type PixPayment struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	QRCodeBase64 string `json:"qrCodeBase64"`
	CopyPaste    string `json:"copyPaste"`
}

// CardRequest charges a tokenized card. The token comes from the provider's
// browser SDK; raw card data never reaches this service.
type CardRequest struct {
	OrderID         string          `json:"orderId"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Token           string          `json:"token"`
	Installments    int             `json:"installments"`
	PaymentMethodID string          `json:"paymentMethodId"`
	PayerEmail      string          `json:"payerEmail"`
}

type CardPayment struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	StatusDetail string `json:"statusDetail,omitempty"`
}

// PreferenceRequest asks for a hosted checkout page for one order.
type PreferenceRequest struct {
	OrderID    string          `json:"orderId"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	Quantity   int             `json:"quantity"`
	PayerEmail string          `json:"payerEmail,omitempty"`
}

type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"initPoint"`
}

// Gateway is the boundary to the external payment provider. Implementations
// are treated as opaque: no retry or reconciliation happens behind this port.
type Gateway interface {
	CreatePixPayment(ctx context.Context, req PixRequest) (*PixPayment, error)
	CreateCardPayment(ctx context.Context, req CardRequest) (*CardPayment, error)
	CreateCheckoutPreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
}

// NotificationPublisher forwards provider webhook notifications to downstream
// consumers for status reconciliation.
type NotificationPublisher interface {
	PublishPaymentNotification(ctx context.Context, notificationType, resourceID string) error
}
