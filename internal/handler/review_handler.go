package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymhub/internal/domain"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

type ReviewHandler struct {
	reviewRepo   *repository.ReviewRepository
	gymRepo      *repository.GymRepository
	purchaseRepo *repository.PurchaseRepository
}

func NewReviewHandler(reviewRepo *repository.ReviewRepository, gymRepo *repository.GymRepository, purchaseRepo *repository.PurchaseRepository) *ReviewHandler {
	return &ReviewHandler{reviewRepo: reviewRepo, gymRepo: gymRepo, purchaseRepo: purchaseRepo}
}

// Create posts a review. The buyer badge is set when the reviewer has a
// verified purchase at the gym.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		GymID   uint   `json:"gym_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	if _, err := h.gymRepo.GetByID(req.GymID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	buyer, err := h.purchaseRepo.HasVerifiedPurchase(userID, req.GymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}
	rv := &models.Review{
		UserID:  userID,
		GymID:   req.GymID,
		Rating:  req.Rating,
		Comment: req.Comment,
		Buyer:   buyer,
	}
	if err := h.reviewRepo.Create(rv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rv})
}

func (h *ReviewHandler) ListByGym(c *gin.Context) {
	gymID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	limit, offset := pagination(c)
	rvs, err := h.reviewRepo.ListByGymID(gymID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": rvs})
}

// Reply lets the gym owner (or staff) answer a review.
func (h *ReviewHandler) Reply(c *gin.Context) {
	userID := middleware.GetUserID(c)
	reviewID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	var req struct {
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	parent, err := h.reviewRepo.GetByID(reviewID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	g, err := h.gymRepo.GetByID(parent.GymID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	if g.OwnerID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	reply := &models.Review{
		UserID:    userID,
		GymID:     parent.GymID,
		Comment:   req.Comment,
		ReplyToID: &parent.ID,
	}
	if err := h.reviewRepo.Create(reply); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reply"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": reply})
}

func (h *ReviewHandler) ListReplies(c *gin.Context) {
	reviewID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	rvs, err := h.reviewRepo.ListReplies(reviewID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list replies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": rvs})
}

// Report flags a review for moderation.
func (h *ReviewHandler) Report(c *gin.Context) {
	reviewID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	if _, err := h.reviewRepo.GetByID(reviewID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	if err := h.reviewRepo.MarkReported(reviewID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to report review"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review reported"})
}
