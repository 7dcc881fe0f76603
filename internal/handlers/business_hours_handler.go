package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chairtime/chairtime-api/internal/httperr"
	"github.com/chairtime/chairtime-api/internal/httpresp"
	"github.com/chairtime/chairtime-api/internal/middleware"
	"github.com/chairtime/chairtime-api/internal/models"
)

type BusinessHoursHandler struct {
	db *gorm.DB
}

func NewBusinessHoursHandler(db *gorm.DB) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db}
}

type BusinessDayConfig struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	IsClosed    bool   `json:"is_closed"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type BusinessHoursUpdateRequest struct {
	Days []BusinessDayConfig `json:"days" binding:"required"`
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var hours []models.BusinessHour
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_business_hours", "Could not load business hours.")
		return
	}

	httpresp.List(c, hours)
}

// Update upserts per weekday. Rows are never deleted; a day the shop stops
// serving is updated to is_closed.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req BusinessHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid business hours data.")
		return
	}

	for _, d := range req.Days {
		if !d.IsClosed && (d.OpeningTime == "" || d.ClosingTime == "" || d.OpeningTime >= d.ClosingTime) {
			httperr.BadRequest(c, "invalid_window", "Opening time must be before closing time.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range req.Days {
			row := models.BusinessHour{
				BarbershopID: barbershopID,
				Weekday:      d.Weekday,
				OpeningTime:  d.OpeningTime,
				ClosingTime:  d.ClosingTime,
				IsClosed:     d.IsClosed,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "barbershop_id"}, {Name: "weekday"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"opening_time", "closing_time", "is_closed", "updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_business_hours", "Could not save business hours.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
