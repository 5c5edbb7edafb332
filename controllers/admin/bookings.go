package admin

import (
	"strconv"

	"locker-booking/logger"
	bookingModel "locker-booking/models/booking"
	bookingService "locker-booking/services/booking"
	"locker-booking/services/booking_event"
	"locker-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingAdminController is the back-office view over all bookings.
type BookingAdminController struct {
	db       *gorm.DB
	bookings *bookingService.Service
}

func NewBookingAdminController(db *gorm.DB) *BookingAdminController {
	return &BookingAdminController{db: db, bookings: bookingService.NewService(db)}
}

// List returns bookings across all users, optionally filtered by status and
// locker.
func (bc *BookingAdminController) List(c *fiber.Ctx) error {
	status := bookingModel.BookingStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid status filter",
		})
	}

	var lockerID uint
	if raw := c.Query("locker"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid locker id",
			})
		}
		lockerID = uint(id)
	}

	list, err := bc.bookings.ListAll(status, lockerID)
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list bookings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    list,
	})
}

// History returns the recorded status transitions for one booking.
func (bc *BookingAdminController) History(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	events, err := booking_event.History(bc.db, uint(id))
	if err != nil {
		logger.Error("Failed to load booking history", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load booking history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking history fetched successfully",
		Data:    events,
	})
}
