package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money serializes as a JSON number to match the storefront contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// DeliveryType selects how a finished order reaches the customer.
type DeliveryType string

const (
	DeliveryToAddress DeliveryType = "address-delivery"
	TableService      DeliveryType = "table-service"
)

// StatusPending is the initial status assigned to freshly submitted orders.
const StatusPending = "pending"

// DeliveryOption is a tagged variant: Address applies to address-delivery,
// TableNumber to table-service.
type DeliveryOption struct {
	Type        DeliveryType `json:"type"`
	Address     string       `json:"address,omitempty"`
	TableNumber int          `json:"tableNumber,omitempty"`
}

// Order is the composite aggregate submitted by the storefront. The ID is
// caller-supplied and unique; resubmissions with the same ID are ignored.
type Order struct {
	ID            string           `json:"orderId"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail,omitempty"`
	Delivery      DeliveryOption   `json:"deliveryOption"`
	Observations  string           `json:"observations,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
	ChangeFor     *decimal.Decimal `json:"trocoPara,omitempty"`
	Total         decimal.Decimal  `json:"total"`
	Status        string           `json:"status,omitempty"`
	SentAt        time.Time        `json:"sentAt,omitempty"`
	Items         []Item           `json:"items"`
}

// Item is a line item owned by exactly one order. Name and prices are
// snapshots taken at submission time: later catalog edits must never alter
// a stored order.
type Item struct {
	ID                  int64           `json:"-"`
	ProductID           int64           `json:"productId"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	BasePrice           decimal.Decimal `json:"basePrice"`
	UnitPriceWithExtras decimal.Decimal `json:"unitPriceWithComplements"`
	Total               decimal.Decimal `json:"totalItemPrice"`
	Complements         []Complement    `json:"complements"`
}

// Complement is an add-on selected for a line item, with name and price
// snapshots decoupled from the catalog.
type Complement struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ValidationError aggregates every problem found in a submitted order so the
// client gets the full list in one response.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validate checks the aggregate against business constraints and returns a
// *ValidationError listing every violation.
func (o Order) Validate() error {
	var messages []string

	if strings.TrimSpace(o.ID) == "" {
		messages = append(messages, "orderId is required")
	}
	if strings.TrimSpace(o.CustomerName) == "" {
		messages = append(messages, "customerName is required")
	}
	if strings.TrimSpace(o.PaymentMethod) == "" {
		messages = append(messages, "paymentMethod is required")
	}

	switch o.Delivery.Type {
	case DeliveryToAddress:
		if strings.TrimSpace(o.Delivery.Address) == "" {
			messages = append(messages, "deliveryOption.address is required for address delivery")
		}
	case TableService:
		if o.Delivery.TableNumber <= 0 {
			messages = append(messages, "deliveryOption.tableNumber is required for table service")
		}
	case "":
		messages = append(messages, "deliveryOption.type is required")
	default:
		messages = append(messages, fmt.Sprintf("unknown deliveryOption.type %q", o.Delivery.Type))
	}

	if len(o.Items) == 0 {
		messages = append(messages, "items must contain at least one entry")
	}
	for i, item := range o.Items {
		if item.ProductID <= 0 {
			messages = append(messages, fmt.Sprintf("items[%d].productId is required", i))
		}
		if strings.TrimSpace(item.Name) == "" {
			messages = append(messages, fmt.Sprintf("items[%d].name is required", i))
		}
		if item.Quantity <= 0 {
			messages = append(messages, fmt.Sprintf("items[%d].quantity must be positive", i))
		}
		for j, comp := range item.Complements {
			if comp.ID <= 0 {
				messages = append(messages, fmt.Sprintf("items[%d].complements[%d].id is required", i, j))
			}
			if strings.TrimSpace(comp.Name) == "" {
				messages = append(messages, fmt.Sprintf("items[%d].complements[%d].name is required", i, j))
			}
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}
