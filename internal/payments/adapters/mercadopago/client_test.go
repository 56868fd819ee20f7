package mercadopago

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sabordecasa/pedidos/internal/payments/ports"
)

func TestCreatePixPayment(t *testing.T) {
	t.Run("provider supplies the qr image", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/v1/payments" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("unexpected auth header: %q", got)
			}
			if r.Header.Get("X-Idempotency-Key") == "" {
				t.Error("expected an idempotency key header")
			}

			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}
			if body["payment_method_id"] != "pix" {
				t.Errorf("expected payment_method_id pix, got %v", body["payment_method_id"])
			}
			if body["transaction_amount"] != 30.5 {
				t.Errorf("expected transaction_amount 30.5, got %v", body["transaction_amount"])
			}
			if body["external_reference"] != "o1" {
				t.Errorf("expected external_reference o1, got %v", body["external_reference"])
			}
			if body["notification_url"] != "https://example.com/webhook" {
				t.Errorf("expected notification_url, got %v", body["notification_url"])
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{
				"id": 123456,
				"status": "pending",
				"point_of_interaction": {
					"transaction_data": {
						"qr_code": "00020126pix-copy-paste",
						"qr_code_base64": "aW1hZ2U="
					}
				}
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-token", "https://example.com/webhook")

		payment, err := client.CreatePixPayment(context.Background(), ports.PixRequest{
			OrderID:    "o1",
			Amount:     decimal.RequireFromString("30.5"),
			PayerEmail: "ana@example.com",
		})
		if err != nil {
			t.Fatalf("CreatePixPayment() failed: %v", err)
		}

		if payment.ID != 123456 || payment.Status != "pending" {
			t.Errorf("unexpected payment: %+v", payment)
		}
		if payment.QRCodeBase64 != "aW1hZ2U=" {
			t.Errorf("expected provider qr image, got %q", payment.QRCodeBase64)
		}
		if payment.CopyPaste != "00020126pix-copy-paste" {
			t.Errorf("unexpected copy-paste code: %q", payment.CopyPaste)
		}
	})

	t.Run("renders the qr image locally when the provider omits it", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{
				"id": 7,
				"status": "pending",
				"point_of_interaction": {
					"transaction_data": {
						"qr_code": "00020126pix-copy-paste"
					}
				}
			}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-token", "")

		payment, err := client.CreatePixPayment(context.Background(), ports.PixRequest{
			OrderID: "o1",
			Amount:  decimal.NewFromInt(10),
		})
		if err != nil {
			t.Fatalf("CreatePixPayment() failed: %v", err)
		}

		if payment.QRCodeBase64 == "" {
			t.Fatal("expected a locally rendered qr image")
		}
		png, err := base64.StdEncoding.DecodeString(payment.QRCodeBase64)
		if err != nil {
			t.Fatalf("qr image is not valid base64: %v", err)
		}
		if len(png) < 8 || string(png[1:4]) != "PNG" {
			t.Error("expected a PNG image")
		}
	})

	t.Run("provider error surfaces with status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid access token"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, "bad-token", "")

		_, err := client.CreatePixPayment(context.Background(), ports.PixRequest{
			OrderID: "o1",
			Amount:  decimal.NewFromInt(10),
		})
		if err == nil {
			t.Fatal("expected an error for a 400 response")
		}
	})
}

func TestCreateCardPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if body["token"] != "card-token" {
			t.Errorf("expected card token, got %v", body["token"])
		}
		if body["installments"] != float64(3) {
			t.Errorf("expected 3 installments, got %v", body["installments"])
		}
		if body["payment_method_id"] != "visa" {
			t.Errorf("expected payment_method_id visa, got %v", body["payment_method_id"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 99, "status": "approved", "status_detail": "accredited"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "")

	payment, err := client.CreateCardPayment(context.Background(), ports.CardRequest{
		OrderID:         "o2",
		Amount:          decimal.RequireFromString("120"),
		Token:           "card-token",
		Installments:    3,
		PaymentMethodID: "visa",
		PayerEmail:      "ana@example.com",
	})
	if err != nil {
		t.Fatalf("CreateCardPayment() failed: %v", err)
	}

	if payment.ID != 99 || payment.Status != "approved" || payment.StatusDetail != "accredited" {
		t.Errorf("unexpected payment: %+v", payment)
	}
}

func TestCreateCheckoutPreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/checkout/preferences" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var body struct {
			Items []struct {
				Title     string  `json:"title"`
				Quantity  int     `json:"quantity"`
				UnitPrice float64 `json:"unit_price"`
			} `json:"items"`
			ExternalReference string `json:"external_reference"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}
		if len(body.Items) != 1 || body.Items[0].Title != "Pedido o3" {
			t.Errorf("unexpected items: %+v", body.Items)
		}
		if body.Items[0].Quantity != 1 {
			t.Errorf("expected default quantity 1, got %d", body.Items[0].Quantity)
		}
		if body.ExternalReference != "o3" {
			t.Errorf("expected external_reference o3, got %q", body.ExternalReference)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "pref-1", "init_point": "https://pay.example.com/pref-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token", "")

	pref, err := client.CreateCheckoutPreference(context.Background(), ports.PreferenceRequest{
		OrderID: "o3",
		Title:   "Pedido o3",
		Amount:  decimal.RequireFromString("45.90"),
	})
	if err != nil {
		t.Fatalf("CreateCheckoutPreference() failed: %v", err)
	}

	if pref.ID != "pref-1" || pref.InitPoint != "https://pay.example.com/pref-1" {
		t.Errorf("unexpected preference: %+v", pref)
	}
}
