package booking

import (
	"errors"
	"fmt"

	"locker-booking/logger"
	bookingModel "locker-booking/models/booking"
	lockerModel "locker-booking/models/locker"
	bookingService "locker-booking/services/booking"
	catalogService "locker-booking/services/catalog"
	"locker-booking/services/pricing"
	"locker-booking/types"
	bookingTypes "locker-booking/types/booking"
	"locker-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BookingController handles the reservation endpoints.
type BookingController struct {
	bookings *bookingService.Service
	catalog  *catalogService.Service
	Logger   *logger.AsyncLogger
}

func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		bookings: bookingService.NewService(db),
		catalog:  catalogService.NewService(db),
		Logger:   asyncLogger,
	}
}

// parseTarget reads and validates the locationId and size path parameters.
func parseTarget(c *fiber.Ctx) (uint, lockerModel.LockerSize, error) {
	locationID, err := c.ParamsInt("locationId")
	if err != nil || locationID <= 0 {
		return 0, "", fmt.Errorf("invalid location id")
	}
	size := lockerModel.LockerSize(c.Params("size"))
	if !size.IsValid() {
		return 0, "", fmt.Errorf("invalid locker size")
	}
	return uint(locationID), size, nil
}

// Availability shows what booking a size at a location would look like: the
// units of that size still listed as available and the reservations currently
// blocking their dates.
func (bc *BookingController) Availability(c *fiber.Ctx) error {
	locationID, size, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	units, err := bc.catalog.AvailableLockers(catalogService.LockerFilters{LocationID: locationID, Size: size})
	if err != nil {
		logger.Error("Failed to list units for booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load availability",
		})
	}

	blocked := make(map[string][]bookingModel.Booking, len(units))
	for i := range units {
		upcoming, err := bc.bookings.UpcomingForLocker(units[i].ID)
		if err != nil {
			logger.Error("Failed to load upcoming bookings", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to load availability",
			})
		}
		blocked[units[i].LockerNumber] = upcoming
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Availability fetched successfully",
		Data: fiber.Map{
			"units":           units,
			"blocked_dates":   blocked,
			"size":            size,
			"size_label":      size.Label(),
			"location_id":     locationID,
			"available_units": len(units),
		},
	})
}

// Store creates a reservation for the first free unit of the requested size
// at the location. The total price is computed server side.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	locationID, size, err := parseTarget(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	created, err := bc.bookings.CreateForSize(bookingService.CreateForSizeInput{
		UserID:              userID,
		LocationID:          locationID,
		Size:                size,
		StartDate:           start,
		EndDate:             end,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Booking created successfully with ID: %d", created.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: fmt.Sprintf("Locker booked successfully! Total: $%.2f", created.TotalPrice),
		Data:    created,
	})
}

// MyBookings lists the authenticated user's bookings with an optional status
// filter. Statuses are refreshed against the calendar on read.
func (bc *BookingController) MyBookings(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	status := bookingModel.BookingStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid status filter",
		})
	}

	list, err := bc.bookings.ListForUser(userID, status)
	if err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load bookings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Bookings fetched successfully",
		Data:    list,
	})
}

// Cancel cancels one of the authenticated user's bookings.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid booking id",
		})
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Invalid user claims",
		})
	}

	cancelled, err := bc.bookings.Cancel(uint(id), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	bc.Logger.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("Booking cancelled successfully with ID: %d", cancelled.ID))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking cancelled successfully",
		Data:    cancelled,
	})
}

// respondServiceError maps booking service errors onto HTTP statuses.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, pricing.ErrInvalidRange):
		status = fiber.StatusBadRequest
		message = err.Error()
	case errors.Is(err, bookingService.ErrConflict):
		status = fiber.StatusConflict
		message = "This locker is already booked for the selected dates. Please choose different dates."
	case errors.Is(err, bookingService.ErrForbidden):
		status = fiber.StatusForbidden
		message = "You don't have permission to change this booking"
	case errors.Is(err, bookingService.ErrInvalidState):
		status = fiber.StatusUnprocessableEntity
		message = "This booking cannot be cancelled."
	case errors.Is(err, bookingService.ErrLockerUnavailable):
		status = fiber.StatusConflict
		message = "No locker of this size is available for booking."
	case errors.Is(err, bookingService.ErrNotFound), errors.Is(err, bookingService.ErrLockerNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	default:
		logger.Error("Booking operation failed", err)
	}

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
	})
}
