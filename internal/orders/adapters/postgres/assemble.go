package postgres

import (
	"time"

	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/shopspring/decimal"
)

// orderRow is one flattened row of the orders/items/complements join. Item and
// complement columns are NULL for orders without items and items without
// complements.
type orderRow struct {
	OrderID       string
	CustomerName  string
	CustomerEmail *string
	DeliveryType  string
	Address       *string
	TableNumber   *int
	Observations  *string
	PaymentMethod string
	ChangeFor     decimal.NullDecimal
	Total         decimal.Decimal
	Status        string
	SentAt        time.Time

	ItemID      *int64
	ProductID   *int64
	ProductName *string
	Quantity    *int
	BasePrice   decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	ItemTotal   decimal.NullDecimal

	ComplementID    *int64
	ComplementName  *string
	ComplementPrice decimal.NullDecimal
}

type itemKey struct {
	orderID string
	itemID  int64
}

type complementKey struct {
	itemID       int64
	complementID int64
}

// assembleOrders rebuilds nested order aggregates from flattened join rows.
// The join repeats an order row once per item and an item row once per
// complement, so entries are created only on the first sighting of each ID.
// First-seen order is preserved, which keeps the query's ordering intact.
func assembleOrders(rows []orderRow) []domain.Order {
	orders := []domain.Order{}
	orderPos := make(map[string]int)
	itemPos := make(map[itemKey]int)
	seenComplement := make(map[complementKey]bool)

	for _, row := range rows {
		pos, ok := orderPos[row.OrderID]
		if !ok {
			pos = len(orders)
			orderPos[row.OrderID] = pos
			orders = append(orders, newOrder(row))
		}

		if row.ItemID == nil {
			continue
		}

		ik := itemKey{orderID: row.OrderID, itemID: *row.ItemID}
		ipos, ok := itemPos[ik]
		if !ok {
			ipos = len(orders[pos].Items)
			itemPos[ik] = ipos
			orders[pos].Items = append(orders[pos].Items, newItem(row))
		}

		if row.ComplementID == nil {
			continue
		}

		ck := complementKey{itemID: *row.ItemID, complementID: *row.ComplementID}
		if seenComplement[ck] {
			continue
		}
		seenComplement[ck] = true

		item := &orders[pos].Items[ipos]
		item.Complements = append(item.Complements, domain.Complement{
			ID:    *row.ComplementID,
			Name:  stringValue(row.ComplementName),
			Price: row.ComplementPrice.Decimal,
		})
	}

	return orders
}

func newOrder(row orderRow) domain.Order {
	order := domain.Order{
		ID:            row.OrderID,
		CustomerName:  row.CustomerName,
		CustomerEmail: stringValue(row.CustomerEmail),
		Delivery: domain.DeliveryOption{
			Type:    domain.DeliveryType(row.DeliveryType),
			Address: stringValue(row.Address),
		},
		Observations:  stringValue(row.Observations),
		PaymentMethod: row.PaymentMethod,
		Total:         row.Total,
		Status:        row.Status,
		SentAt:        row.SentAt,
		Items:         []domain.Item{},
	}

	if row.TableNumber != nil {
		order.Delivery.TableNumber = *row.TableNumber
	}
	if row.ChangeFor.Valid {
		change := row.ChangeFor.Decimal
		order.ChangeFor = &change
	}

	return order
}

func newItem(row orderRow) domain.Item {
	item := domain.Item{
		ID:                  *row.ItemID,
		Name:                stringValue(row.ProductName),
		BasePrice:           row.BasePrice.Decimal,
		UnitPriceWithExtras: row.UnitPrice.Decimal,
		Total:               row.ItemTotal.Decimal,
		Complements:         []domain.Complement{},
	}

	if row.ProductID != nil {
		item.ProductID = *row.ProductID
	}
	if row.Quantity != nil {
		item.Quantity = *row.Quantity
	}

	return item
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
