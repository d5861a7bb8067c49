package service

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

// withdrawTransitions is the only source of legality for status
// changes: pending -> approved/rejected, approved -> completed/rejected.
// rejected and completed are terminal.
var withdrawTransitions = map[string][]string{
	domain.WithdrawPending:  {domain.WithdrawApproved, domain.WithdrawRejected},
	domain.WithdrawApproved: {domain.WithdrawCompleted, domain.WithdrawRejected},
}

func transitionAllowed(from, to string) bool {
	for _, t := range withdrawTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type WithdrawService struct {
	db         *gorm.DB
	users      *repository.UserRepository
	wallets    *repository.WalletRepository
	withdraws  *repository.WithdrawRepository
	settlement *SettlementService
}

func NewWithdrawService(
	db *gorm.DB,
	users *repository.UserRepository,
	wallets *repository.WalletRepository,
	withdraws *repository.WithdrawRepository,
	settlement *SettlementService,
) *WithdrawService {
	return &WithdrawService{db: db, users: users, wallets: wallets, withdraws: withdraws, settlement: settlement}
}

// Request files a withdrawal for a gym owner. The balance check here is
// advisory only: funds are not reserved, and the real guard runs again
// at completion time when the wallet is actually debited.
func (s *WithdrawService) Request(userID uint, amount decimal.Decimal) (*models.WithdrawRequest, error) {
	u, err := s.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", domain.ErrNotFound, userID)
	}
	if !u.IsOwner() {
		return nil, fmt.Errorf("%w: only gym owners can withdraw", domain.ErrPermissionDenied)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	w, err := s.wallets.GetByOwnerID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: no wallet for this owner", domain.ErrInsufficientFunds)
	}
	if amount.GreaterThan(w.Balance) {
		return nil, fmt.Errorf("%w: requested %s, balance %s", domain.ErrInsufficientFunds, amount, w.Balance)
	}
	req := &models.WithdrawRequest{
		UserID:   userID,
		WalletID: w.ID,
		Amount:   amount,
		Status:   domain.WithdrawPending,
	}
	if err := s.withdraws.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateStatus applies a staff decision. The transition is claimed with
// a compare-and-set on the stored status, so concurrent decisions on
// the same request cannot both win. Completion re-checks the wallet
// balance at debit time (earlier withdrawals or purchases may have
// drained it since the request) and on failure leaves the request in
// its previous status.
func (s *WithdrawService) UpdateStatus(requestID uint, newStatus, adminMessage string, staffID uint) (*models.WithdrawRequest, error) {
	req, err := s.withdraws.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("%w: withdraw request %d", domain.ErrNotFound, requestID)
	}
	if !transitionAllowed(req.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, req.Status, newStatus)
	}

	now := nowFunc()
	fields := map[string]interface{}{
		"status":          newStatus,
		"processed_by_id": staffID,
		"processed_at":    now,
	}
	if adminMessage != "" {
		fields["admin_message"] = adminMessage
	}

	if newStatus != domain.WithdrawCompleted {
		claimed, err := s.withdraws.ClaimTransition(s.db, req.ID, req.Status, fields)
		if err != nil {
			return nil, err
		}
		if !claimed {
			return nil, fmt.Errorf("%w: request already processed", domain.ErrIllegalTransition)
		}
		return s.withdraws.GetByID(req.ID)
	}

	fields["completed_at"] = now
	err = s.db.Transaction(func(tx *gorm.DB) error {
		claimed, err := s.withdraws.ClaimTransition(tx, req.ID, domain.WithdrawApproved, fields)
		if err != nil {
			return err
		}
		if !claimed {
			// A concurrent completion got there first.
			return fmt.Errorf("%w: request already processed", domain.ErrIllegalTransition)
		}
		desc := fmt.Sprintf("Withdrawal completed. Request #%d. %s", req.ID, adminMessage)
		_, err = s.settlement.Withdraw(tx, req.Amount, WalletAccount(req.WalletID), desc)
		return err
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"request_id": req.ID, "amount": req.Amount.String()}).Info("withdrawal completed")
	return s.withdraws.GetByID(req.ID)
}
