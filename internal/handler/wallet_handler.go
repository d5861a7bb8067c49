package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymhub/internal/middleware"
	"gymhub/internal/repository"
)

type WalletHandler struct {
	walletRepo *repository.WalletRepository
	txnRepo    *repository.TransactionRepository
}

func NewWalletHandler(walletRepo *repository.WalletRepository, txnRepo *repository.TransactionRepository) *WalletHandler {
	return &WalletHandler{walletRepo: walletRepo, txnRepo: txnRepo}
}

// GetMine returns the owner's wallet.
func (h *WalletHandler) GetMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.walletRepo.GetByOwnerID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": w})
}

// GetMyTransactions returns ledger rows for the owner's wallet.
func (h *WalletHandler) GetMyTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.walletRepo.GetByOwnerID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		return
	}
	limit, offset := pagination(c)
	ts, err := h.txnRepo.ListByWalletID(w.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": ts})
}

// GetAdminWallet returns the platform wallet. Staff only.
func (h *WalletHandler) GetAdminWallet(c *gin.Context) {
	aw, err := h.walletRepo.GetAdminWallet()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load admin wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin_wallet": aw})
}

// ListWallets returns every owner wallet. Staff only.
func (h *WalletHandler) ListWallets(c *gin.Context) {
	ws, err := h.walletRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wallets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallets": ws})
}

// ListTransactions is the staff ledger view, filterable by status.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	limit, offset := pagination(c)
	ts, err := h.txnRepo.List(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": ts})
}
