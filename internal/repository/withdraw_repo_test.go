package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
)

func seedWithdrawRequest(t *testing.T, db *gorm.DB, status string) *models.WithdrawRequest {
	t.Helper()
	owner := &models.User{Phone: "+8101", Role: domain.RoleOwner, IsActive: true}
	require.NoError(t, db.Create(owner).Error)
	w := &models.Wallet{OwnerID: owner.ID, Balance: decimal.RequireFromString("400")}
	require.NoError(t, db.Create(w).Error)
	req := &models.WithdrawRequest{
		UserID:   owner.ID,
		WalletID: w.ID,
		Amount:   decimal.RequireFromString("300"),
		Status:   status,
	}
	require.NoError(t, db.Create(req).Error)
	return req
}

func TestClaimTransitionIsSingleWinner(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawRepository(db)
	req := seedWithdrawRequest(t, db, domain.WithdrawApproved)

	now := time.Now()
	fields := map[string]interface{}{
		"status":          domain.WithdrawCompleted,
		"processed_by_id": uint(1),
		"processed_at":    now,
		"completed_at":    now,
	}

	ok, err := repo.ClaimTransition(db, req.ID, domain.WithdrawApproved, fields)
	require.NoError(t, err)
	require.True(t, ok)

	// The request already left approved: the second claim loses.
	ok, err = repo.ClaimTransition(db, req.ID, domain.WithdrawApproved, fields)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestClaimTransitionChecksCurrentStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewWithdrawRepository(db)
	req := seedWithdrawRequest(t, db, domain.WithdrawPending)

	ok, err := repo.ClaimTransition(db, req.ID, domain.WithdrawApproved, map[string]interface{}{
		"status": domain.WithdrawCompleted,
	})
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetByID(req.ID)
	require.NoError(t, err)
	require.Equal(t, domain.WithdrawPending, got.Status)
}
