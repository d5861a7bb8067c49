package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gymhub/internal/database"
	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedOwnerWithPackage(t *testing.T, db *gorm.DB, price string, commissionRate float64) (*models.User, *models.Gym, *models.Package) {
	t.Helper()
	owner := &models.User{Phone: fmt.Sprintf("+1000%d", len(t.Name())), Role: domain.RoleOwner, IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	gym := &models.Gym{OwnerID: owner.ID, Name: "Test Gym"}
	require.NoError(t, db.Create(gym).Error)
	pkg := &models.Package{
		GymID:          gym.ID,
		Title:          "Monthly",
		Price:          decimal.RequireFromString(price),
		DurationDays:   30,
		CommissionRate: commissionRate,
	}
	require.NoError(t, db.Create(pkg).Error)
	return owner, gym, pkg
}

func seedCustomer(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()
	u := &models.User{Phone: phone, Role: domain.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newPurchaseService(db *gorm.DB) *PurchaseService {
	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	return NewPurchaseService(
		db,
		repository.NewPackageRepository(db),
		repository.NewPurchaseRepository(db),
		txnRepo,
		walletRepo,
		NewDiscountService(discountRepo),
		discountRepo,
		NewSettlementService(walletRepo, txnRepo),
		acceptAllVerifier{},
	)
}

type acceptAllVerifier struct{}

func (acceptAllVerifier) VerifyPayment(_ context.Context, ref string) (bool, error) {
	return ref != "", nil
}

func requireDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(want).Equal(got),
		"expected %s, got %s", want, got.String())
}
