package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymhub/internal/middleware"
	"gymhub/internal/repository"
)

type FavoriteHandler struct {
	favoriteRepo *repository.FavoriteRepository
	gymRepo      *repository.GymRepository
}

func NewFavoriteHandler(favoriteRepo *repository.FavoriteRepository, gymRepo *repository.GymRepository) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepo: favoriteRepo, gymRepo: gymRepo}
}

// Toggle adds the gym to favorites, or removes it if already there.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	gymID, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}
	if _, err := h.gymRepo.GetByID(gymID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}
	fav, err := h.favoriteRepo.IsFavorite(userID, gymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check favorite"})
		return
	}
	if fav {
		if err := h.favoriteRepo.Remove(userID, gymID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorited": false})
		return
	}
	if err := h.favoriteRepo.Add(userID, gymID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": true})
}

func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	favs, err := h.favoriteRepo.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}
