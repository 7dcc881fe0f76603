package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/chairtime/chairtime-api/internal/domain/booking"
	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/httpresp"
	"github.com/chairtime/chairtime-api/internal/middleware"
	"github.com/chairtime/chairtime-api/internal/models"
)

type FeedbackHandler struct {
	db *gorm.DB
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{db: db}
}

type CreateFeedbackRequest struct {
	Rating            int    `json:"rating" binding:"required,min=1,max=5"`
	ServiceRating     int    `json:"service_rating" binding:"min=0,max=5"`
	PunctualityRating int    `json:"punctuality_rating" binding:"min=0,max=5"`
	ValueRating       int    `json:"value_rating" binding:"min=0,max=5"`
	Comment           string `json:"comment"`
}

// Create attaches feedback to a completed booking of the caller, once.
func (h *FeedbackHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramID(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if booking.Status != string(domain.StatusCompleted) {
		httperr.BadRequest(c, "booking_not_completed", "Feedback is only accepted after completion.")
		return
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid feedback data.")
		return
	}

	fb := models.Feedback{
		BookingID:         booking.ID,
		Rating:            req.Rating,
		ServiceRating:     req.ServiceRating,
		PunctualityRating: req.PunctualityRating,
		ValueRating:       req.ValueRating,
		Comment:           req.Comment,
	}
	if err := h.db.Create(&fb).Error; err != nil {
		// booking_id is unique; feedback is immutable once given.
		httperr.Conflict(c, "feedback_exists", "Feedback was already given for this booking.")
		return
	}

	httpresp.Created(c, fb)
}

func (h *FeedbackHandler) GetForBooking(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := paramID(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := h.db.
		Where("id = ? AND customer_id = ?", bookingID, customerID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	var fb models.Feedback
	if err := h.db.Where("booking_id = ?", booking.ID).First(&fb).Error; err != nil {
		httperr.NotFound(c, "feedback_not_found", "No feedback for this booking.")
		return
	}

	httpresp.OK(c, fb)
}
