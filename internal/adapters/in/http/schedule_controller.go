package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/doctor-schedule-engine/internal/config"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/domain"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/json_types"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/in"
)

type ScheduleController struct {
	schedule in.ScheduleUseCase
	shifts   in.ShiftUseCase
	cfg      *config.Config
}

func NewScheduleController(schedule in.ScheduleUseCase, shifts in.ShiftUseCase, cfg *config.Config) *ScheduleController {
	return &ScheduleController{
		schedule: schedule,
		shifts:   shifts,
		cfg:      cfg,
	}
}

func (c *ScheduleController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/doctors/:doctorId/schedule/day", c.getDailySchedule)
		api.GET("/doctors/:doctorId/schedule/week", c.getWeeklySchedule)
		api.GET("/doctors/:doctorId/slots", c.getAvailableSlots)
		api.GET("/doctors/:doctorId/availability", c.getAvailability)
		api.PUT("/doctors/:doctorId/availability", c.replaceAvailability)
		api.GET("/doctors/:doctorId/shifts", c.listShifts)

		api.POST("/shifts", c.createShift)
		api.PUT("/shifts/:shiftId", c.updateShift)
		api.PUT("/shifts/:shiftId/status", c.updateShiftStatus)
		api.DELETE("/shifts/:shiftId", c.deleteShift)
	}
}

type ShiftRequest struct {
	DoctorID     uuid.UUID            `json:"doctorId" binding:"required"`
	Type         domain.ShiftType     `json:"shiftType" binding:"required"`
	Date         json_types.Date      `json:"shiftDate" binding:"required"`
	StartTime    json_types.TimeOfDay `json:"startTime"`
	EndTime      json_types.TimeOfDay `json:"endTime"`
	DepartmentID uuid.UUID            `json:"departmentId"`
	IsEmergency  bool                 `json:"isEmergencyShift"`
	Notes        string               `json:"notes"`
}

type ShiftStatusRequest struct {
	Status domain.ShiftStatus `json:"status" binding:"required"`
}

type ReplaceAvailabilityRequest struct {
	Rules []domain.AvailabilityRule `json:"rules" binding:"required"`
}

func (c *ScheduleController) getDailySchedule(ctx *gin.Context) {
	doctorID, date, ok := c.doctorAndDate(ctx)
	if !ok {
		return
	}

	schedule, err := c.schedule.GetDailySchedule(ctx.Request.Context(), doctorID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, schedule)
}

func (c *ScheduleController) getWeeklySchedule(ctx *gin.Context) {
	doctorID, date, ok := c.doctorAndDate(ctx)
	if !ok {
		return
	}

	week, err := c.schedule.GetWeeklySchedule(ctx.Request.Context(), doctorID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, week)
}

func (c *ScheduleController) getAvailableSlots(ctx *gin.Context) {
	doctorID, date, ok := c.doctorAndDate(ctx)
	if !ok {
		return
	}

	starts, err := c.schedule.GetAvailableSlotStarts(ctx.Request.Context(), doctorID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"slots":    starts,
	})
}

func (c *ScheduleController) getAvailability(ctx *gin.Context) {
	doctorID, ok := c.doctorID(ctx)
	if !ok {
		return
	}

	rules, err := c.schedule.GetWeeklyAvailability(ctx.Request.Context(), doctorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (c *ScheduleController) replaceAvailability(ctx *gin.Context) {
	doctorID, ok := c.doctorID(ctx)
	if !ok {
		return
	}

	var req ReplaceAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rules, err := c.schedule.ReplaceWeeklyAvailability(ctx.Request.Context(), doctorID, req.Rules)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (c *ScheduleController) listShifts(ctx *gin.Context) {
	doctorID, date, ok := c.doctorAndDate(ctx)
	if !ok {
		return
	}

	shifts, err := c.shifts.ListDoctorShifts(ctx.Request.Context(), doctorID, date)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

func (c *ScheduleController) createShift(ctx *gin.Context) {
	var req ShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := c.shifts.CreateShift(ctx.Request.Context(), domain.Shift{
		DoctorID:     req.DoctorID,
		Type:         req.Type,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DepartmentID: req.DepartmentID,
		IsEmergency:  req.IsEmergency,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, shift)
}

func (c *ScheduleController) updateShift(ctx *gin.Context) {
	shiftID, err := uuid.Parse(ctx.Param("shiftId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format"})
		return
	}

	var req ShiftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := c.shifts.UpdateShift(ctx.Request.Context(), domain.Shift{
		ID:           shiftID,
		DoctorID:     req.DoctorID,
		Type:         req.Type,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		DepartmentID: req.DepartmentID,
		IsEmergency:  req.IsEmergency,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shift)
}

func (c *ScheduleController) updateShiftStatus(ctx *gin.Context) {
	shiftID, err := uuid.Parse(ctx.Param("shiftId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format"})
		return
	}

	var req ShiftStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shift, err := c.shifts.UpdateShiftStatus(ctx.Request.Context(), shiftID, req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, shift)
}

func (c *ScheduleController) deleteShift(ctx *gin.Context) {
	shiftID, err := uuid.Parse(ctx.Param("shiftId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID format"})
		return
	}

	if err := c.shifts.DeleteShift(ctx.Request.Context(), shiftID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *ScheduleController) doctorID(ctx *gin.Context) (uuid.UUID, bool) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return uuid.Nil, false
	}
	return doctorID, true
}

func (c *ScheduleController) doctorAndDate(ctx *gin.Context) (uuid.UUID, json_types.Date, bool) {
	doctorID, ok := c.doctorID(ctx)
	if !ok {
		return uuid.Nil, json_types.Date{}, false
	}

	date, err := json_types.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return uuid.Nil, json_types.Date{}, false
	}

	return doctorID, date, true
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrShiftConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrShiftNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrShiftFinalized),
		errors.Is(err, domain.ErrInvalidShiftStatus),
		errors.Is(err, domain.ErrInvalidScheduleWindow),
		errors.Is(err, domain.ErrUnknownDay),
		errors.Is(err, json_types.ErrInvalidTimeFormat):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *ScheduleController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
