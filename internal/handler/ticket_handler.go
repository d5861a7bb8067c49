package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymhub/internal/domain"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/repository"
)

type TicketHandler struct {
	ticketRepo *repository.TicketRepository
}

func NewTicketHandler(ticketRepo *repository.TicketRepository) *TicketHandler {
	return &TicketHandler{ticketRepo: ticketRepo}
}

// Create opens a support ticket with its first message.
func (h *TicketHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.Ticket{
		Subject:   req.Subject,
		CreatorID: userID,
		Status:    domain.TicketOpen,
	}
	if err := h.ticketRepo.Create(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	m := &models.TicketMessage{TicketID: t.ID, AuthorID: userID, Message: req.Message}
	if err := h.ticketRepo.AddMessage(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	t.Messages = []models.TicketMessage{*m}
	c.JSON(http.StatusCreated, gin.H{"ticket": t})
}

func (h *TicketHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	t, err := h.ticketRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	if t.CreatorID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t})
}

func (h *TicketHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ts, err := h.ticketRepo.ListByCreatorID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": ts})
}

// ListAll is the staff queue, filterable by status.
func (h *TicketHandler) ListAll(c *gin.Context) {
	limit, offset := pagination(c)
	ts, err := h.ticketRepo.ListAll(c.Query("status"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": ts})
}

// AddMessage appends to the thread. Staff replies move an open ticket to
// pending; any message on a resolved ticket reopens it.
func (h *TicketHandler) AddMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.ticketRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	if t.CreatorID != userID && !middleware.IsStaff(c) {
		abortWithError(c, domain.ErrPermissionDenied)
		return
	}
	if t.Status == domain.TicketClosed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket is closed"})
		return
	}
	m := &models.TicketMessage{TicketID: id, AuthorID: userID, Message: req.Message}
	if err := h.ticketRepo.AddMessage(m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add message"})
		return
	}
	if middleware.IsStaff(c) {
		if t.AdminID == nil {
			t.AdminID = &userID
		}
		if t.Status == domain.TicketOpen {
			t.Status = domain.TicketPending
		}
	} else if t.Status == domain.TicketResolved {
		t.Status = domain.TicketOpen
	}
	if err := h.ticketRepo.Update(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": m})
}

// UpdateStatus is the staff resolution endpoint.
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case domain.TicketOpen, domain.TicketPending, domain.TicketResolved, domain.TicketClosed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	t, err := h.ticketRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	t.Status = req.Status
	if err := h.ticketRepo.Update(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t})
}
