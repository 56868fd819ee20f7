package mercadopago

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/sabordecasa/pedidos/internal/payments/ports"
)

const requestTimeout = 30 * time.Second

// Client talks JSON over HTTPS to a Mercado Pago compatible payment API.
// Every create call carries a fresh X-Idempotency-Key so provider-side
// retries never double-charge.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	accessToken     string
	notificationURL string
}

func NewClient(baseURL, accessToken, notificationURL string) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: requestTimeout},
		baseURL:         baseURL,
		accessToken:     accessToken,
		notificationURL: notificationURL,
	}
}

type payer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type paymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description,omitempty"`
	PaymentMethodID   string  `json:"payment_method_id"`
	Token             string  `json:"token,omitempty"`
	Installments      int     `json:"installments,omitempty"`
	Payer             payer   `json:"payer"`
	ExternalReference string  `json:"external_reference"`
	NotificationURL   string  `json:"notification_url,omitempty"`
}

type paymentResponse struct {
	ID                 int64  `json:"id"`
	Status             string `json:"status"`
	StatusDetail       string `json:"status_detail"`
	PointOfInteraction struct {
		TransactionData struct {
			QRCode       string `json:"qr_code"`
			QRCodeBase64 string `json:"qr_code_base64"`
		} `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

func (c *Client) CreatePixPayment(ctx context.Context, req ports.PixRequest) (*ports.PixPayment, error) {
	amount, _ := req.Amount.Float64()
	body := paymentRequest{
		TransactionAmount: amount,
		Description:       req.Description,
		PaymentMethodID:   "pix",
		Payer: payer{
			Email:     req.PayerEmail,
			FirstName: req.PayerName,
		},
		ExternalReference: req.OrderID,
		NotificationURL:   c.notificationURL,
	}

	var resp paymentResponse
	if err := c.post(ctx, "/v1/payments", body, &resp); err != nil {
		return nil, fmt.Errorf("create pix payment: %w", err)
	}

	copyPaste := resp.PointOfInteraction.TransactionData.QRCode
	qrBase64 := resp.PointOfInteraction.TransactionData.QRCodeBase64
	if qrBase64 == "" && copyPaste != "" {
		// Some provider configurations omit the rendered image; build one
		// locally from the copy-paste code.
		png, err := qrcode.Encode(copyPaste, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("render pix qr code: %w", err)
		}
		qrBase64 = base64.StdEncoding.EncodeToString(png)
	}

	return &ports.PixPayment{
		ID:           resp.ID,
		Status:       resp.Status,
		QRCodeBase64: qrBase64,
		CopyPaste:    copyPaste,
	}, nil
}

func (c *Client) CreateCardPayment(ctx context.Context, req ports.CardRequest) (*ports.CardPayment, error) {
	amount, _ := req.Amount.Float64()
	body := paymentRequest{
		TransactionAmount: amount,
		Description:       req.Description,
		PaymentMethodID:   req.PaymentMethodID,
		Token:             req.Token,
		Installments:      req.Installments,
		Payer: payer{
			Email: req.PayerEmail,
		},
		ExternalReference: req.OrderID,
		NotificationURL:   c.notificationURL,
	}

	var resp paymentResponse
	if err := c.post(ctx, "/v1/payments", body, &resp); err != nil {
		return nil, fmt.Errorf("create card payment: %w", err)
	}

	return &ports.CardPayment{
		ID:           resp.ID,
		Status:       resp.Status,
		StatusDetail: resp.StatusDetail,
	}, nil
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferenceRequest struct {
	Items             []preferenceItem `json:"items"`
	Payer             *payer           `json:"payer,omitempty"`
	ExternalReference string           `json:"external_reference"`
	NotificationURL   string           `json:"notification_url,omitempty"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

func (c *Client) CreateCheckoutPreference(ctx context.Context, req ports.PreferenceRequest) (*ports.Preference, error) {
	amount, _ := req.Amount.Float64()
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	body := preferenceRequest{
		Items: []preferenceItem{
			{
				Title:      req.Title,
				Quantity:   quantity,
				UnitPrice:  amount,
				CurrencyID: "BRL",
			},
		},
		ExternalReference: req.OrderID,
		NotificationURL:   c.notificationURL,
	}
	if req.PayerEmail != "" {
		body.Payer = &payer{Email: req.PayerEmail}
	}

	var resp preferenceResponse
	if err := c.post(ctx, "/checkout/preferences", body, &resp); err != nil {
		return nil, fmt.Errorf("create checkout preference: %w", err)
	}

	return &ports.Preference{
		ID:        resp.ID,
		InitPoint: resp.InitPoint,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}

	return nil
}
