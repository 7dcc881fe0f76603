package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/httpresp"
	"github.com/chairtime/chairtime-api/internal/middleware"
	"github.com/chairtime/chairtime-api/internal/models"
)

type ClosingDaysHandler struct {
	db *gorm.DB
}

func NewClosingDaysHandler(db *gorm.DB) *ClosingDaysHandler {
	return &ClosingDaysHandler{db: db}
}

type CreateClosingDayRequest struct {
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

func (h *ClosingDaysHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var days []models.SpecialClosingDay
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("date ASC").
		Find(&days).Error; err != nil {

		httperr.Internal(c, "failed_to_list_closing_days", "Could not list closing days.")
		return
	}

	httpresp.List(c, days)
}

func (h *ClosingDaysHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateClosingDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid closing day data.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	day := models.SpecialClosingDay{
		BarbershopID: barbershopID,
		Date:         req.Date,
		Reason:       req.Reason,
	}
	if err := h.db.Create(&day).Error; err != nil {
		// (shop, date) is unique; a second insert for the same date fails.
		httperr.Conflict(c, "closing_day_exists", "This date is already registered.")
		return
	}

	httpresp.Created(c, day)
}

func (h *ClosingDaysHandler) Delete(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	id := c.Param("id")

	result := h.db.
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		Delete(&models.SpecialClosingDay{})

	if result.Error != nil {
		httperr.Internal(c, "failed_to_delete_closing_day", "Could not remove closing day.")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "closing_day_not_found", "Closing day not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
