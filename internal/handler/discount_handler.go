package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gymhub/internal/domain"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

type DiscountHandler struct {
	discountRepo *repository.DiscountRepository
	gymRepo      *repository.GymRepository
}

func NewDiscountHandler(discountRepo *repository.DiscountRepository, gymRepo *repository.GymRepository) *DiscountHandler {
	return &DiscountHandler{discountRepo: discountRepo, gymRepo: gymRepo}
}

type discountRequest struct {
	Code         string          `json:"code" binding:"required"`
	DiscountType string          `json:"discount_type" binding:"required"`
	Value        decimal.Decimal `json:"value" binding:"required"`
	ClubID       *uint           `json:"club_id"`
	StartDate    *time.Time      `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	UsageLimit   *uint           `json:"usage_limit"`
	PerUserLimit *uint           `json:"per_user_limit"`
	IsActive     *bool           `json:"is_active"`
}

func (r *discountRequest) validate() string {
	if r.DiscountType != domain.DiscountTypePercent && r.DiscountType != domain.DiscountTypeAmount {
		return "discount_type must be percent or amount"
	}
	if r.Value.LessThanOrEqual(decimal.Zero) {
		return "value must be positive"
	}
	if r.DiscountType == domain.DiscountTypePercent && r.Value.GreaterThan(decimal.NewFromInt(100)) {
		return "percent value cannot exceed 100"
	}
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return "end_date must be after start_date"
	}
	return ""
}

// Create makes a discount code. Staff create admin-sourced codes (no
// club) or club codes for any gym; owners may only create club codes
// for their own gyms.
func (h *DiscountHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	sourceType := domain.SourceAdmin
	if req.ClubID != nil {
		g, err := h.gymRepo.GetByID(*req.ClubID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
			return
		}
		if g.OwnerID != userID && !middleware.IsStaff(c) {
			abortWithError(c, domain.ErrPermissionDenied)
			return
		}
		sourceType = domain.SourceClub
	} else if !middleware.IsStaff(c) {
		// Owners cannot mint platform-funded codes.
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	d := &models.DiscountCode{
		Code:         req.Code,
		DiscountType: req.DiscountType,
		Value:        req.Value,
		ClubID:       req.ClubID,
		SourceType:   sourceType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		UsageLimit:   req.UsageLimit,
		PerUserLimit: req.PerUserLimit,
		IsActive:     true,
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if err := h.discountRepo.Create(d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount": d})
}

// List is role-scoped: staff see every code, owners only the club codes
// of their own gyms.
func (h *DiscountHandler) List(c *gin.Context) {
	if middleware.IsStaff(c) {
		limit, offset := pagination(c)
		ds, err := h.discountRepo.ListAll(limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discounts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"discounts": ds})
		return
	}
	ds, err := h.discountRepo.ListByOwnerID(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": ds})
}

func (h *DiscountHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount id"})
		return
	}
	d, err := h.discountRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
		return
	}
	if !h.canManage(c, d) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	var req struct {
		Value        *decimal.Decimal `json:"value"`
		StartDate    *time.Time       `json:"start_date"`
		EndDate      *time.Time       `json:"end_date"`
		UsageLimit   *uint            `json:"usage_limit"`
		PerUserLimit *uint            `json:"per_user_limit"`
		IsActive     *bool            `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Value != nil {
		if req.Value.LessThanOrEqual(decimal.Zero) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "value must be positive"})
			return
		}
		d.Value = *req.Value
	}
	if req.StartDate != nil {
		d.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = req.EndDate
	}
	if req.UsageLimit != nil {
		d.UsageLimit = req.UsageLimit
	}
	if req.PerUserLimit != nil {
		d.PerUserLimit = req.PerUserLimit
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	if err := h.discountRepo.Update(d); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update discount"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount": d})
}

func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discount id"})
		return
	}
	d, err := h.discountRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
		return
	}
	if !h.canManage(c, d) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	if err := h.discountRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete discount"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "discount deleted"})
}

func (h *DiscountHandler) canManage(c *gin.Context, d *models.DiscountCode) bool {
	if middleware.IsStaff(c) {
		return true
	}
	if d.ClubID == nil || d.Club == nil {
		return false
	}
	return d.Club.OwnerID == middleware.GetUserID(c)
}
