package sales

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xmxsystem/webhook-backend/pkg/db"
	"github.com/xmxsystem/webhook-backend/pkg/db/models"
	"github.com/xmxsystem/webhook-backend/pkg/enums"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS sales (
  id TEXT PRIMARY KEY,
  external_id TEXT NOT NULL UNIQUE,
  customer_email TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'BRL',
  status TEXT NOT NULL,
  affiliate_code TEXT,
  affiliate_name TEXT,
  commission_value NUMERIC,
  payment_method TEXT NOT NULL,
  transaction_id TEXT NOT NULL,
  metadata TEXT,
  received_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func testSale(externalID string) *models.Sale {
	return &models.Sale{
		ExternalID:    externalID,
		CustomerEmail: "a@b.com",
		CustomerName:  "A",
		ProductID:     "P1",
		ProductName:   "Widget",
		Price:         decimal.NewFromFloat(9.99),
		Currency:      "BRL",
		Status:        enums.SaleStatusApproved,
		PaymentMethod: "card",
		TransactionID: "T1",
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))
	ctx := context.Background()

	sale := testSale("S1")
	require.NoError(t, repo.Create(ctx, sale))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", sale.ID.String())

	found, err := repo.FindByExternalID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", found.ExternalID)
	assert.Equal(t, enums.SaleStatusApproved, found.Status)
	assert.True(t, found.Price.Equal(decimal.NewFromFloat(9.99)))
}

func TestRepositoryCreateDuplicateExternalID(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSale("S1")))

	err := repo.Create(ctx, testSale("S1"))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err), "expected unique violation, got %v", err)
}

func TestRepositoryFindMissingIsNotFound(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))

	_, err := repo.FindByExternalID(context.Background(), "S404")
	require.Error(t, err)
	assert.True(t, db.IsNotFound(err))
}

func TestRepositoryUpdateStatus(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testSale("S1")))

	updated, err := repo.UpdateStatus(ctx, "S1", enums.SaleStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, enums.SaleStatusRefunded, updated.Status)

	found, err := repo.FindByExternalID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, enums.SaleStatusRefunded, found.Status)
}

func TestRepositoryUpdateStatusMissingRecord(t *testing.T) {
	repo := NewRepository(setupSalesTestDB(t))

	_, err := repo.UpdateStatus(context.Background(), "S404", enums.SaleStatusRefunded)
	require.Error(t, err)
	assert.True(t, db.IsNotFound(err))
}
