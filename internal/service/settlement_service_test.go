package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

func newSettlement(db *gorm.DB) (*SettlementService, *repository.WalletRepository, *repository.TransactionRepository) {
	wallets := repository.NewWalletRepository(db)
	txns := repository.NewTransactionRepository(db)
	return NewSettlementService(wallets, txns), wallets, txns
}

func TestTransferWritesPairedLedgerRows(t *testing.T) {
	db := newTestDB(t)
	svc, wallets, _ := newSettlement(db)
	owner := seedCustomer(t, db, "+4001")

	aw, err := wallets.EnsureAdminWallet(db)
	require.NoError(t, err)
	require.NoError(t, wallets.CreditAdmin(db, aw.ID, decimal.RequireFromString("500")))
	w, err := wallets.GetOrCreate(db, owner.ID)
	require.NoError(t, err)

	debit, credit, err := svc.Transfer(db, decimal.RequireFromString("200"),
		AdminAccount(aw.ID), WalletAccount(w.ID), nil, "payout")
	require.NoError(t, err)
	require.Equal(t, domain.TxnDebit, debit.Type)
	require.Equal(t, domain.TxnCredit, credit.Type)
	require.NotEmpty(t, debit.Reference)
	require.Equal(t, debit.Reference, credit.Reference)
	require.NotNil(t, debit.AdminWalletID)
	require.NotNil(t, credit.WalletID)

	aw2, err := wallets.GetAdminWallet()
	require.NoError(t, err)
	requireDecimalEqual(t, "300", aw2.Balance)
	w2, err := wallets.GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "200", w2.Balance)
}

func TestTransferInsufficientFundsHasNoEffect(t *testing.T) {
	db := newTestDB(t)
	svc, wallets, _ := newSettlement(db)
	owner := seedCustomer(t, db, "+4002")

	aw, err := wallets.EnsureAdminWallet(db)
	require.NoError(t, err)
	require.NoError(t, wallets.CreditAdmin(db, aw.ID, decimal.RequireFromString("100")))
	w, err := wallets.GetOrCreate(db, owner.ID)
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, _, err := svc.Transfer(tx, decimal.RequireFromString("500"),
			AdminAccount(aw.ID), WalletAccount(w.ID), nil, "too much")
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	aw2, err := wallets.GetAdminWallet()
	require.NoError(t, err)
	requireDecimalEqual(t, "100", aw2.Balance)
	w2, err := wallets.GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "0", w2.Balance)

	var n int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestTransferRejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc, wallets, _ := newSettlement(db)
	aw, err := wallets.EnsureAdminWallet(db)
	require.NoError(t, err)

	_, _, err = svc.Transfer(db, decimal.Zero, AdminAccount(aw.ID), AdminAccount(aw.ID), nil, "noop")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestWithdrawGuardsBalance(t *testing.T) {
	db := newTestDB(t)
	svc, wallets, _ := newSettlement(db)
	owner := seedCustomer(t, db, "+4003")

	w, err := wallets.GetOrCreate(db, owner.ID)
	require.NoError(t, err)
	require.NoError(t, wallets.Credit(db, w.ID, decimal.RequireFromString("300")))

	row, err := svc.Withdraw(db, decimal.RequireFromString("300"), WalletAccount(w.ID), "payout")
	require.NoError(t, err)
	require.Equal(t, domain.TxnDebit, row.Type)

	_, err = svc.Withdraw(db, decimal.RequireFromString("1"), WalletAccount(w.ID), "overdraft")
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	w2, err := wallets.GetByID(w.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, "0", w2.Balance)
}

func TestEnsureAdminWalletIsSingleton(t *testing.T) {
	db := newTestDB(t)
	wallets := repository.NewWalletRepository(db)

	a, err := wallets.EnsureAdminWallet(db)
	require.NoError(t, err)
	b, err := wallets.EnsureAdminWallet(db)
	require.NoError(t, err)
	require.Equal(t, a.ID, b.ID)

	var n int64
	require.NoError(t, db.Model(&models.AdminWallet{}).Count(&n).Error)
	require.Equal(t, int64(1), n)
}
