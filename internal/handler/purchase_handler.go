package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymhub/internal/middleware"
	"gymhub/internal/repository"
	"gymhub/internal/service"
)

type PurchaseHandler struct {
	purchaseSvc  *service.PurchaseService
	purchaseRepo *repository.PurchaseRepository
}

func NewPurchaseHandler(purchaseSvc *service.PurchaseService, purchaseRepo *repository.PurchaseRepository) *PurchaseHandler {
	return &PurchaseHandler{purchaseSvc: purchaseSvc, purchaseRepo: purchaseRepo}
}

// CreatePending opens a purchase against a package, optionally applying
// a discount code, and returns the purchase with its ledger placeholder.
func (h *PurchaseHandler) CreatePending(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		PackageID    uint   `json:"package_id" binding:"required"`
		DiscountCode string `json:"discount_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, placeholder, err := h.purchaseSvc.CreatePending(userID, req.PackageID, req.DiscountCode)
	if err != nil {
		// The endpoint contract returns 400 for a missing package and
		// for every discount rejection alike.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Pending purchase created",
		"purchase":    p,
		"transaction": placeholder,
	})
}

// Finalize confirms payment of a pending purchase by its placeholder
// transaction id and reveals the buyer code.
func (h *PurchaseHandler) Finalize(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		TransactionID uint `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.purchaseSvc.ConfirmPayment(c.Request.Context(), userID, req.TransactionID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Purchase finalized successfully",
		"purchase":   p,
		"buyer_code": p.BuyerCode,
	})
}

// Verify lets the gym owner settle a paid purchase by the code the
// buyer presents in person.
func (h *PurchaseHandler) Verify(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var req struct {
		BuyerCode string `json:"buyer_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.purchaseSvc.Verify(ownerID, req.BuyerCode)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Purchase verified", "purchase": p})
}

// ListMine returns the buyer's purchase history.
func (h *PurchaseHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	ps, err := h.purchaseRepo.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list purchases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": ps})
}

// ListSales returns purchases of the owner's gym packages (the
// verification worklist).
func (h *PurchaseHandler) ListSales(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	ps, err := h.purchaseRepo.ListSalesByOwnerID(ownerID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": ps})
}
