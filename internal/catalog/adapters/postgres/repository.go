package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sabordecasa/pedidos/internal/catalog/domain"
)

// CatalogRepository reads and replaces the catalog in PostgreSQL.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const listProductsQuery = `
	SELECT id, nome, descricao, preco, categoria, imagem_url, num_complementos_gratis
	FROM produtos
	ORDER BY categoria, nome`

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.FreeComplementCount)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

const insertProductQuery = `
	INSERT INTO produtos (id, nome, descricao, preco, categoria, imagem_url, num_complementos_gratis)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// ReplaceProducts swaps the whole product set: truncate plus reinsert in one
// transaction. Concurrent readers may observe the catalog mid-swap; the
// operation is administrative and rare.
func (r *CatalogRepository) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE produtos"); err != nil {
		return fmt.Errorf("truncate products: %w", err)
	}

	for _, p := range products {
		_, err := tx.Exec(ctx, insertProductQuery,
			p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.FreeComplementCount)
		if err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

const listComplementsQuery = `
	SELECT id, nome, preco, categoria
	FROM complementos_disponiveis
	ORDER BY categoria, nome`

func (r *CatalogRepository) ListComplements(ctx context.Context) ([]domain.Complement, error) {
	rows, err := r.pool.Query(ctx, listComplementsQuery)
	if err != nil {
		return nil, fmt.Errorf("query complements: %w", err)
	}
	defer rows.Close()

	var complements []domain.Complement
	for rows.Next() {
		var c domain.Complement
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Category); err != nil {
			return nil, fmt.Errorf("scan complement row: %w", err)
		}
		complements = append(complements, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate complement rows: %w", err)
	}

	return complements, nil
}
