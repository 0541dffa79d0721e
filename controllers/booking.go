package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/services"
	"github.com/2110503-CEDT68/be-project-68-group7/utils"
)

// respondBookingError translates workflow failures into the envelope. The
// ownership failure deliberately answers 401 rather than 403, matching the
// reference system.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondError(c, http.StatusNotFound, "Booking not found")
	case errors.Is(err, services.ErrCarNotFound):
		utils.RespondError(c, http.StatusNotFound, "Car not found")
	case errors.Is(err, services.ErrCarUnavailable):
		utils.RespondError(c, http.StatusBadRequest, "Requested car is not available")
	case errors.Is(err, services.ErrQuotaExceeded):
		who := currentIdentity(c)
		utils.RespondError(c, http.StatusBadRequest, fmt.Sprintf("The user with ID %d has already 3 bookings", who.UserID))
	case errors.Is(err, services.ErrNotOwner):
		utils.RespondError(c, http.StatusUnauthorized, "Not authorized to access this booking")
	default:
		logger.GetLogger().Error("booking operation failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// GetBookings lists bookings for /bookings and the nested
// /cars/:id/bookings route. Admins may narrow by the nested car id or a
// ?provider= query; everyone else only ever sees their own bookings.
func GetBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := currentIdentity(c)

		var carID uint
		if raw := c.Param("id"); raw != "" {
			id, ok := parseID(c, "id")
			if !ok {
				utils.RespondError(c, http.StatusNotFound, "Car not found")
				return
			}
			carID = id
		}

		var providerID uint
		if raw := c.Query("provider"); raw != "" {
			if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
				providerID = uint(v)
			}
		}

		bookings, err := svc.List(c.Request.Context(), who, carID, providerID)
		if err != nil {
			respondBookingError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(bookings), "data": bookings})
	}
}

func GetBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Booking not found")
			return
		}

		booking, err := svc.Get(c.Request.Context(), currentIdentity(c), id)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		utils.RespondData(c, http.StatusOK, booking)
	}
}

// AddBooking books the car in the nested route for the requester.
func AddBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		carID, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Car not found")
			return
		}

		var input struct {
			Date time.Time `json:"date" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Please add a date")
			return
		}

		booking, err := svc.Create(c.Request.Context(), currentIdentity(c), carID, input.Date)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		utils.RespondData(c, http.StatusCreated, booking)
	}
}

func UpdateBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Booking not found")
			return
		}

		var input struct {
			Date *time.Time `json:"date"`
			Car  *uint      `json:"car"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}

		booking, err := svc.Update(c.Request.Context(), currentIdentity(c), id, services.UpdateInput{
			Date:  input.Date,
			CarID: input.Car,
		})
		if err != nil {
			respondBookingError(c, err)
			return
		}
		utils.RespondData(c, http.StatusOK, booking)
	}
}

func DeleteBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			utils.RespondError(c, http.StatusNotFound, "Booking not found")
			return
		}

		if err := svc.Delete(c.Request.Context(), currentIdentity(c), id); err != nil {
			respondBookingError(c, err)
			return
		}
		utils.RespondData(c, http.StatusOK, gin.H{})
	}
}
