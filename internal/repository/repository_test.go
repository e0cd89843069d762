package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	creds := &Credentials{
		Host:              host,
		Port:              port.Int(),
		User:              "testuser",
		Password:          "testpass",
		DBName:            "testdb",
		MigrationsDirPath: "../../migrations",
	}

	repo, err := NewRepository(creds)
	require.NoError(t, err)

	err = repo.RunMigrations(creds)
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func seedCropPost(t *testing.T, repo *Repository, qty float64) int64 {
	t.Helper()
	var id int64
	err := repo.db.QueryRow(
		`INSERT INTO crop_posts (farmer_id, crop_name, quantity, unit, price_per_unit)
		 VALUES (1, 'Carrots', $1, 'kg', 250.00) RETURNING id`, qty).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedShopProduct(t *testing.T, repo *Repository, qty float64) int64 {
	t.Helper()
	var id int64
	err := repo.db.QueryRow(
		`INSERT INTO shop_inventory (shop_id, product_name, quantity, unit_price)
		 VALUES (1, 'Organic Fertilizer', $1, 1500.00) RETURNING product_id`, qty).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedCartLine(t *testing.T, repo *Repository, buyerID, productID int64, kind domain.ProductKind, qty float64) int64 {
	t.Helper()
	var id int64
	err := repo.db.QueryRow(
		`INSERT INTO carts (buyer_id, product_id, product_kind, quantity, price_at_add, product_name)
		 VALUES ($1, $2, $3, $4, 100.00, 'seeded') RETURNING id`,
		buyerID, productID, kind, qty).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedAllocation(t *testing.T, repo *Repository, cartItemID, transportID int64) int64 {
	t.Helper()
	var id int64
	err := repo.db.QueryRow(
		`INSERT INTO cart_transports (cart_item_id, transport_id, vehicle_type, vehicle_number, phone_number,
		                              base_rate, per_km_rate, calculated_distance, transport_cost, district)
		 VALUES ($1, $2, 'lorry', 'NW-1234', '0771234567', 500.00, 80.00, 12.50, 1500.00, 'Kurunegala')
		 RETURNING id`, cartItemID, transportID).Scan(&id)
	require.NoError(t, err)
	return id
}

func countRows(t *testing.T, repo *Repository, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, repo.db.QueryRow(query, args...).Scan(&n))
	return n
}

func cropState(t *testing.T, repo *Repository, id int64) (float64, string) {
	t.Helper()
	var qty float64
	var status string
	require.NoError(t, repo.db.QueryRow(
		`SELECT quantity, status FROM crop_posts WHERE id = $1`, id).Scan(&qty, &status))
	return qty, status
}

func shopState(t *testing.T, repo *Repository, id int64) (float64, bool) {
	t.Helper()
	var qty float64
	var available bool
	require.NoError(t, repo.db.QueryRow(
		`SELECT quantity, is_available FROM shop_inventory WHERE product_id = $1`, id).Scan(&qty, &available))
	return qty, available
}
