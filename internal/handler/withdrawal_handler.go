package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gymhub/internal/middleware"
	"gymhub/internal/repository"
	"gymhub/internal/service"
)

type WithdrawalHandler struct {
	withdrawSvc  *service.WithdrawService
	withdrawRepo *repository.WithdrawRepository
}

func NewWithdrawalHandler(withdrawSvc *service.WithdrawService, withdrawRepo *repository.WithdrawRepository) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawSvc: withdrawSvc, withdrawRepo: withdrawRepo}
}

// Create files a withdrawal request against the owner's wallet.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawSvc.Request(userID, req.Amount)
	if err != nil {
		// Invalid amount, wrong role and insufficient balance all map
		// to 400 on this endpoint.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdraw_request": w})
}

// ListMine returns the caller's withdrawal requests.
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ws, err := h.withdrawRepo.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdraw requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdraw_requests": ws})
}

// UpdateStatus is the staff decision endpoint: approve, reject or
// complete. Completion performs the actual wallet debit.
func (h *WithdrawalHandler) UpdateStatus(c *gin.Context) {
	staffID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdraw request id"})
		return
	}
	var req struct {
		Status       string `json:"status" binding:"required"`
		AdminMessage string `json:"admin_message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawSvc.UpdateStatus(id, req.Status, req.AdminMessage, staffID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdraw_request": w})
}

// ListAll is the staff view over every request, filterable by status.
func (h *WithdrawalHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	ws, err := h.withdrawRepo.ListAll(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdraw requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdraw_requests": ws})
}
