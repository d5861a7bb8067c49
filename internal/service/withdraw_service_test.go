package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

func newWithdrawService(db *gorm.DB) *WithdrawService {
	wallets := repository.NewWalletRepository(db)
	txns := repository.NewTransactionRepository(db)
	return NewWithdrawService(
		db,
		repository.NewUserRepository(db),
		wallets,
		repository.NewWithdrawRepository(db),
		NewSettlementService(wallets, txns),
	)
}

func seedOwnerWithBalance(t *testing.T, db *gorm.DB, phone, balance string) (*models.User, *models.Wallet) {
	t.Helper()
	owner := &models.User{Phone: phone, Role: domain.RoleOwner, IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	wallets := repository.NewWalletRepository(db)
	w, err := wallets.GetOrCreate(db, owner.ID)
	require.NoError(t, err)
	require.NoError(t, wallets.Credit(db, w.ID, decimal.RequireFromString(balance)))
	return owner, w
}

func TestWithdrawRequestHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, w := seedOwnerWithBalance(t, db, "+5001", "400")

	req, err := svc.Request(owner.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawPending, req.Status)
	require.Equal(t, w.ID, req.WalletID)

	// The advisory check does not reserve funds.
	wallet, err := repository.NewWalletRepository(db).GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "400", wallet.Balance)
}

func TestWithdrawRequestRejectsOverBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, _ := seedOwnerWithBalance(t, db, "+5002", "400")

	_, err := svc.Request(owner.ID, decimal.RequireFromString("500"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestWithdrawRequestRejectsNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	customer := seedCustomer(t, db, "+5003")

	_, err := svc.Request(customer.ID, decimal.RequireFromString("10"))
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestWithdrawRequestRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, _ := seedOwnerWithBalance(t, db, "+5004", "400")

	_, err := svc.Request(owner.ID, decimal.Zero)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestWithdrawTransitionTable(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{domain.WithdrawPending, domain.WithdrawApproved, true},
		{domain.WithdrawPending, domain.WithdrawRejected, true},
		{domain.WithdrawPending, domain.WithdrawCompleted, false},
		{domain.WithdrawApproved, domain.WithdrawCompleted, true},
		{domain.WithdrawApproved, domain.WithdrawRejected, true},
		{domain.WithdrawApproved, domain.WithdrawPending, false},
		{domain.WithdrawRejected, domain.WithdrawApproved, false},
		{domain.WithdrawCompleted, domain.WithdrawRejected, false},
		{domain.WithdrawCompleted, domain.WithdrawCompleted, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, transitionAllowed(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestWithdrawIllegalTransitionRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, _ := seedOwnerWithBalance(t, db, "+5005", "400")
	staff := seedCustomer(t, db, "+5006")

	req, err := svc.Request(owner.ID, decimal.RequireFromString("100"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(req.ID, domain.WithdrawCompleted, "", staff.ID)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestWithdrawCompletionDebitsWallet(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, w := seedOwnerWithBalance(t, db, "+5007", "400")
	staff := seedCustomer(t, db, "+5008")

	frozen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return frozen }
	t.Cleanup(func() { nowFunc = time.Now })

	req, err := svc.Request(owner.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)

	approved, err := svc.UpdateStatus(req.ID, domain.WithdrawApproved, "looks good", staff.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawApproved, approved.Status)
	require.NotNil(t, approved.ProcessedByID)
	require.Equal(t, staff.ID, *approved.ProcessedByID)

	done, err := svc.UpdateStatus(req.ID, domain.WithdrawCompleted, "paid out", staff.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.True(t, done.CompletedAt.Equal(frozen))

	wallet, err := repository.NewWalletRepository(db).GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "100", wallet.Balance)

	// A completed payout leaves a single debit ledger row.
	var rows []models.Transaction
	require.NoError(t, db.Where("wallet_id = ? AND type = ?", w.ID, domain.TxnDebit).Find(&rows).Error)
	require.Len(t, rows, 1)
	requireDecimalEqual(t, "300", rows[0].Amount)

	// Repeating the completion cannot pay out again.
	_, err = svc.UpdateStatus(req.ID, domain.WithdrawCompleted, "paid out", staff.ID)
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	wallet, err = repository.NewWalletRepository(db).GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "100", wallet.Balance)
}

func TestWithdrawCompletionFailsOnDrainedWallet(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, w := seedOwnerWithBalance(t, db, "+5009", "400")
	staff := seedCustomer(t, db, "+5010")

	// Both requests are individually valid at submission time.
	first, err := svc.Request(owner.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)
	second, err := svc.Request(owner.ID, decimal.RequireFromString("300"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, domain.WithdrawApproved, "", staff.ID)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(second.ID, domain.WithdrawApproved, "", staff.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(first.ID, domain.WithdrawCompleted, "", staff.ID)
	require.NoError(t, err)

	// The second completion hits the completion-time balance guard.
	_, err = svc.UpdateStatus(second.ID, domain.WithdrawCompleted, "", staff.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	wallet, err := repository.NewWalletRepository(db).GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "100", wallet.Balance)

	// The failed completion left the request approved, not completed.
	stored, err := repository.NewWithdrawRepository(db).GetByID(second.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawApproved, stored.Status)
}

func TestWithdrawRejectionWithMessage(t *testing.T) {
	db := newTestDB(t)
	svc := newWithdrawService(db)
	owner, _ := seedOwnerWithBalance(t, db, "+5011", "400")
	staff := seedCustomer(t, db, "+5012")

	req, err := svc.Request(owner.ID, decimal.RequireFromString("100"))
	require.NoError(t, err)

	rejected, err := svc.UpdateStatus(req.ID, domain.WithdrawRejected, "bank details missing", staff.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawRejected, rejected.Status)
	require.Equal(t, "bank details missing", rejected.AdminMessage)
}
