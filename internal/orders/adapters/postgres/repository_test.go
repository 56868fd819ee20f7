//go:build integration

package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sabordecasa/pedidos/internal/database"
	"github.com/sabordecasa/pedidos/internal/orders/adapters/postgres"
	"github.com/sabordecasa/pedidos/internal/orders/domain"
	"github.com/sabordecasa/pedidos/internal/orders/ports"
	"github.com/shopspring/decimal"
	testpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := testpostgres.Run(ctx,
		"postgres:16-alpine",
		testpostgres.WithDatabase("test"),
		testpostgres.WithUsername("test"),
		testpostgres.WithPassword("test"),
		testpostgres.BasicWaitStrategies(),
		testpostgres.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").WithOccurrence(2)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	projectRoot := findProjectRoot(t)
	migrationsPath := filepath.Join(projectRoot, "migrations")

	if err := database.RunMigrations(connStr, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPool(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func sampleOrder(id string, sentAt time.Time) domain.Order {
	return domain.Order{
		ID:            id,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Delivery: domain.DeliveryOption{
			Type:        domain.TableService,
			TableNumber: 5,
		},
		PaymentMethod: "pix",
		Total:         decimal.RequireFromString("30"),
		Status:        domain.StatusPending,
		SentAt:        sentAt,
		Items: []domain.Item{
			{
				ProductID:           7,
				Name:                "X",
				Quantity:            2,
				BasePrice:           decimal.RequireFromString("10"),
				UnitPriceWithExtras: decimal.RequireFromString("15"),
				Total:               decimal.RequireFromString("30"),
				Complements: []domain.Complement{
					{ID: 3, Name: "cheese", Price: decimal.RequireFromString("5")},
				},
			},
		},
	}
}

func TestRepositoryCreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := sampleOrder("o1", time.Now().UTC())
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	got := orders[0]
	if got.ID != "o1" {
		t.Errorf("expected order o1, got %s", got.ID)
	}
	if got.CustomerName != "Ana" {
		t.Errorf("expected customer Ana, got %s", got.CustomerName)
	}
	if got.Delivery.Type != domain.TableService || got.Delivery.TableNumber != 5 {
		t.Errorf("unexpected delivery option %+v", got.Delivery)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.ProductID != 7 || item.Quantity != 2 {
		t.Errorf("unexpected item %+v", item)
	}
	if len(item.Complements) != 1 {
		t.Fatalf("expected 1 complement, got %d", len(item.Complements))
	}
	comp := item.Complements[0]
	if comp.ID != 3 || comp.Name != "cheese" || !comp.Price.Equal(decimal.RequireFromString("5")) {
		t.Errorf("unexpected complement %+v", comp)
	}
}

func TestRepositoryCreate_DuplicateIsNoOp(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := sampleOrder("dup", time.Now().UTC())
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	replay := sampleOrder("dup", time.Now().UTC())
	replay.CustomerName = "Someone Else"
	if err := repo.Create(ctx, replay); err != nil {
		t.Fatalf("expected duplicate create to succeed silently, got: %v", err)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}

	if len(orders) != 1 {
		t.Fatalf("expected 1 order after replay, got %d", len(orders))
	}
	if orders[0].CustomerName != "Ana" {
		t.Errorf("expected original order preserved, got customer %s", orders[0].CustomerName)
	}
	if len(orders[0].Items) != 1 {
		t.Errorf("expected replay to add no items, got %d", len(orders[0].Items))
	}
}

func TestRepositoryCreate_FailureLeavesNoTrace(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	order := sampleOrder("broken", time.Now().UTC())
	// Violates the NOT NULL constraint on nome_produto at the second item,
	// after the header and first item were already inserted in the tx.
	order.Items = append(order.Items, domain.Item{ProductID: 8, Quantity: 1})

	if err := repo.Create(ctx, order); err == nil {
		t.Fatal("expected create to fail")
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected rollback to leave no orders, got %d", len(orders))
	}
}

func TestRepositoryList_NewestFirst(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		order := sampleOrder(id, now.Add(time.Duration(i)*time.Minute))
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("failed to create order %s: %v", id, err)
		}
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}

	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "new" || orders[2].ID != "old" {
		t.Errorf("expected newest first, got %s ... %s", orders[0].ID, orders[2].ID)
	}
}

func TestRepositoryUpdateStatuses(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewRepository(pool)
	ctx := context.Background()

	if err := repo.Create(ctx, sampleOrder("o1", time.Now().UTC())); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	if err := repo.Create(ctx, sampleOrder("o2", time.Now().UTC())); err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	applied, err := repo.UpdateStatuses(ctx, []ports.StatusUpdate{
		{OrderID: "o1", Status: "preparing"},
		{OrderID: "missing", Status: "preparing"},
		{OrderID: "o2", Status: "delivered"},
	})
	if err != nil {
		t.Fatalf("failed to update statuses: %v", err)
	}

	if applied != 2 {
		t.Errorf("expected 2 applied updates, got %d", applied)
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list orders: %v", err)
	}

	statuses := map[string]string{}
	for _, order := range orders {
		statuses[order.ID] = order.Status
	}
	if statuses["o1"] != "preparing" || statuses["o2"] != "delivered" {
		t.Errorf("unexpected statuses %v", statuses)
	}
}
