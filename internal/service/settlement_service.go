package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

// Account identifies one side of a settlement: either a gym owner's
// wallet or the platform's admin wallet, never both.
type Account struct {
	WalletID      *uint
	AdminWalletID *uint
}

func WalletAccount(id uint) Account {
	return Account{WalletID: &id}
}

func AdminAccount(id uint) Account {
	return Account{AdminWalletID: &id}
}

func (a Account) describe() string {
	if a.AdminWalletID != nil {
		return fmt.Sprintf("admin_wallet:%d", *a.AdminWalletID)
	}
	if a.WalletID != nil {
		return fmt.Sprintf("wallet:%d", *a.WalletID)
	}
	return "unknown"
}

// SettlementService is the money-movement primitive. Every balance
// mutation it performs writes a matching ledger row in the same
// database transaction; callers supply the transaction boundary.
type SettlementService struct {
	wallets      *repository.WalletRepository
	transactions *repository.TransactionRepository
}

func NewSettlementService(wallets *repository.WalletRepository, transactions *repository.TransactionRepository) *SettlementService {
	return &SettlementService{wallets: wallets, transactions: transactions}
}

// Transfer moves amount from one account to the other and records a
// debit/credit pair sharing a reference. The source debit is balance
// guarded; on insufficient funds nothing is written and the caller's
// transaction can roll back with no partial effect.
func (s *SettlementService) Transfer(tx *gorm.DB, amount decimal.Decimal, from, to Account, purchaseID *uint, description string) (*models.Transaction, *models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: transfer amount must be positive", domain.ErrValidation)
	}
	if err := s.debit(tx, from, amount); err != nil {
		return nil, nil, err
	}
	if err := s.credit(tx, to, amount); err != nil {
		return nil, nil, err
	}
	ref := uuid.New().String()
	debitRow := &models.Transaction{
		WalletID:      from.WalletID,
		AdminWalletID: from.AdminWalletID,
		PurchaseID:    purchaseID,
		Amount:        amount,
		Type:          domain.TxnDebit,
		Status:        domain.TxnStatusCompleted,
		Reference:     ref,
		Description:   description,
	}
	creditRow := &models.Transaction{
		WalletID:      to.WalletID,
		AdminWalletID: to.AdminWalletID,
		PurchaseID:    purchaseID,
		Amount:        amount,
		Type:          domain.TxnCredit,
		Status:        domain.TxnStatusCompleted,
		Reference:     ref,
		Description:   description,
	}
	if err := s.transactions.Create(tx, debitRow); err != nil {
		return nil, nil, err
	}
	if err := s.transactions.Create(tx, creditRow); err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{
		"amount": amount.String(),
		"from":   from.describe(),
		"to":     to.describe(),
		"ref":    ref,
	}).Info("settlement transfer")
	return debitRow, creditRow, nil
}

// Deposit credits money entering the system from outside (a buyer's
// payment) into an account, with a single credit ledger row.
func (s *SettlementService) Deposit(tx *gorm.DB, amount decimal.Decimal, to Account, purchaseID *uint, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrValidation)
	}
	if err := s.credit(tx, to, amount); err != nil {
		return nil, err
	}
	row := &models.Transaction{
		WalletID:      to.WalletID,
		AdminWalletID: to.AdminWalletID,
		PurchaseID:    purchaseID,
		Amount:        amount,
		Type:          domain.TxnCredit,
		Status:        domain.TxnStatusCompleted,
		Reference:     uuid.New().String(),
		Description:   description,
	}
	if err := s.transactions.Create(tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// Withdraw debits money leaving the system (an owner payout) from an
// account, with a single debit ledger row. Balance guarded.
func (s *SettlementService) Withdraw(tx *gorm.DB, amount decimal.Decimal, from Account, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrValidation)
	}
	if err := s.debit(tx, from, amount); err != nil {
		return nil, err
	}
	row := &models.Transaction{
		WalletID:      from.WalletID,
		AdminWalletID: from.AdminWalletID,
		Amount:        amount,
		Type:          domain.TxnDebit,
		Status:        domain.TxnStatusCompleted,
		Reference:     uuid.New().String(),
		Description:   description,
	}
	if err := s.transactions.Create(tx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SettlementService) debit(tx *gorm.DB, a Account, amount decimal.Decimal) error {
	switch {
	case a.AdminWalletID != nil:
		return s.wallets.DebitAdmin(tx, *a.AdminWalletID, amount)
	case a.WalletID != nil:
		return s.wallets.Debit(tx, *a.WalletID, amount)
	default:
		return fmt.Errorf("%w: settlement account has no wallet", domain.ErrValidation)
	}
}

func (s *SettlementService) credit(tx *gorm.DB, a Account, amount decimal.Decimal) error {
	switch {
	case a.AdminWalletID != nil:
		return s.wallets.CreditAdmin(tx, *a.AdminWalletID, amount)
	case a.WalletID != nil:
		return s.wallets.Credit(tx, *a.WalletID, amount)
	default:
		return fmt.Errorf("%w: settlement account has no wallet", domain.ErrValidation)
	}
}
