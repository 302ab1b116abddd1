package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhall/internal/middleware"
	"github.com/joshua-takyi/eventhall/internal/models"
	"github.com/joshua-takyi/eventhall/internal/services"
)

func SubmitBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.FormResponse{
				Message: "Invalid booking details.",
				Ok:      false,
				Errors:  models.BindDetails(err),
			})
			return
		}

		booking, err := b.Submit(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, models.ErrValidation) {
				c.JSON(http.StatusBadRequest, models.FormResponse{
					Message: "Invalid booking details.",
					Ok:      false,
					Errors:  models.ValidationDetails(err),
				})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.FormResponse{
				Message: "Error in registration.",
				Ok:      false,
			})
			return
		}

		c.JSON(http.StatusOK, models.FormResponse{
			Message: "Booking registered successfully!",
			Ok:      true,
			BID:     booking.BID,
		})
	}
}

func ListBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query models.BookingsQuery
		// an unreadable body carries no email and is refused below
		_ = c.ShouldBind(&query)

		if middleware.SessionError(c) != nil {
			c.JSON(http.StatusInternalServerError, models.Message("Error fetching bookings."))
			return
		}
		session, _ := middleware.CurrentSession(c)
		bookings, err := b.ListForSession(c.Request.Context(), session, query.Email)
		if err != nil {
			if errors.Is(err, models.ErrUnauthorized) {
				c.JSON(http.StatusForbidden, models.Message("Unauthorized access"))
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, models.Message("Error fetching bookings."))
			return
		}

		if len(bookings) == 0 {
			c.JSON(http.StatusNotFound, models.Message("No bookings found"))
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}
