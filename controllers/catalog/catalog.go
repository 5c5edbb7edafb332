package catalog

import (
	"errors"
	"strconv"

	"locker-booking/logger"
	lockerModel "locker-booking/models/locker"
	bookingService "locker-booking/services/booking"
	catalogService "locker-booking/services/catalog"
	"locker-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the public browsing endpoints.
type CatalogController struct {
	catalog  *catalogService.Service
	bookings *bookingService.Service
}

func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{
		catalog:  catalogService.NewService(db),
		bookings: bookingService.NewService(db),
	}
}

// Index lists available lockers, filtered by the location, size and search
// query parameters.
func (cc *CatalogController) Index(c *fiber.Ctx) error {
	filters := catalogService.LockerFilters{
		Size:   lockerModel.LockerSize(c.Query("size")),
		Search: c.Query("search"),
	}
	if raw := c.Query("location"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid location id",
			})
		}
		filters.LocationID = uint(id)
	}
	if filters.Size != "" && !filters.Size.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid locker size",
		})
	}

	lockers, err := cc.catalog.AvailableLockers(filters)
	if err != nil {
		logger.Error("Failed to list available lockers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load catalog",
		})
	}

	locations, err := cc.catalog.Locations()
	if err != nil {
		logger.Error("Failed to list locations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load catalog",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Catalog fetched successfully",
		Data: fiber.Map{
			"lockers":   lockers,
			"locations": locations,
		},
	})
}

// LocationDetail returns one location with its available sizes and the
// upcoming reservations blocking each available unit.
func (cc *CatalogController) LocationDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid location id",
		})
	}

	loc, err := cc.catalog.Location(uint(id))
	if err != nil {
		if errors.Is(err, catalogService.ErrLocationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Location not found",
			})
		}
		logger.Error("Failed to load location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load location",
		})
	}

	sizes, err := cc.catalog.SizesAtLocation(loc.ID)
	if err != nil {
		logger.Error("Failed to load sizes at location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load location",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Location fetched successfully",
		Data: fiber.Map{
			"location": loc,
			"sizes":    sizes,
		},
	})
}
