package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
	"github.com/shopspring/decimal"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create persists the order header, its line items and their complement
// selections in a single transaction. A duplicate order ID makes the whole
// submission a no-op instead of an error; any other failure rolls everything
// back so partial orders are never observable.
func (r *Repository) Create(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	headerQuery := `
		INSERT INTO pedidos (
			id_pedido, nome_cliente, email_cliente, tipo_entrega, endereco_entrega,
			numero_mesa, observacoes, metodo_pagamento, troco_para, valor_total,
			status, data_hora_envio
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id_pedido) DO NOTHING
	`

	tag, err := tx.Exec(ctx, headerQuery,
		order.ID,
		order.CustomerName,
		nullIfEmpty(order.CustomerEmail),
		string(order.Delivery.Type),
		nullIfEmpty(order.Delivery.Address),
		nullIfZero(order.Delivery.TableNumber),
		nullIfEmpty(order.Observations),
		order.PaymentMethod,
		nullDecimal(order.ChangeFor),
		order.Total,
		order.Status,
		order.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	// Replayed submission: the header already exists, so inserting items again
	// would attach duplicates to the stored order.
	if tag.RowsAffected() == 0 {
		return nil
	}

	itemQuery := `
		INSERT INTO itens_do_pedido (
			id_pedido, id_produto, nome_produto, quantidade,
			preco_base_produto, preco_unitario_com_complementos, total_item_preco
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id_item_pedido
	`

	complementQuery := `
		INSERT INTO complementos_do_item (
			id_item_pedido, id_complemento_disponivel, nome_complemento, preco_complemento
		)
		VALUES ($1, $2, $3, $4)
	`

	for _, item := range order.Items {
		var itemID int64
		err := tx.QueryRow(ctx, itemQuery,
			order.ID,
			item.ProductID,
			item.Name,
			item.Quantity,
			item.BasePrice,
			item.UnitPriceWithExtras,
			item.Total,
		).Scan(&itemID)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}

		for _, comp := range item.Complements {
			_, err := tx.Exec(ctx, complementQuery, itemID, comp.ID, comp.Name, comp.Price)
			if err != nil {
				return fmt.Errorf("insert item complement: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}

	return nil
}

// List issues one outer-joined query producing a row per
// (order, item, complement) combination and rebuilds the nested aggregates.
func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT
			p.id_pedido, p.nome_cliente, p.email_cliente, p.tipo_entrega,
			p.endereco_entrega, p.numero_mesa, p.observacoes, p.metodo_pagamento,
			p.troco_para, p.valor_total, p.status, p.data_hora_envio,
			i.id_item_pedido, i.id_produto, i.nome_produto, i.quantidade,
			i.preco_base_produto, i.preco_unitario_com_complementos, i.total_item_preco,
			c.id_complemento_disponivel, c.nome_complemento, c.preco_complemento
		FROM pedidos p
		LEFT JOIN itens_do_pedido i ON i.id_pedido = p.id_pedido
		LEFT JOIN complementos_do_item c ON c.id_item_pedido = i.id_item_pedido
		ORDER BY p.data_hora_envio DESC, p.id_pedido, i.id_item_pedido
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var flat []orderRow
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(
			&row.OrderID,
			&row.CustomerName,
			&row.CustomerEmail,
			&row.DeliveryType,
			&row.Address,
			&row.TableNumber,
			&row.Observations,
			&row.PaymentMethod,
			&row.ChangeFor,
			&row.Total,
			&row.Status,
			&row.SentAt,
			&row.ItemID,
			&row.ProductID,
			&row.ProductName,
			&row.Quantity,
			&row.BasePrice,
			&row.UnitPrice,
			&row.ItemTotal,
			&row.ComplementID,
			&row.ComplementName,
			&row.ComplementPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		flat = append(flat, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return assembleOrders(flat), nil
}

// UpdateStatuses applies the batch inside one transaction: a failing update
// rolls back every other update in the batch. Updates matching no order are
// counted as zero rows, not errors.
func (r *Repository) UpdateStatuses(ctx context.Context, updates []ports.StatusUpdate) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `UPDATE pedidos SET status = $1 WHERE id_pedido = $2`

	var applied int64
	for _, update := range updates {
		tag, err := tx.Exec(ctx, query, update.Status, update.OrderID)
		if err != nil {
			return 0, fmt.Errorf("update order status: %w", err)
		}
		applied += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit status updates: %w", err)
	}

	return applied, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullIfZero(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
