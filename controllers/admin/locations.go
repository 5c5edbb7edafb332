package admin

import (
	"errors"
	"fmt"

	"locker-booking/logger"
	"locker-booking/metrics"
	locationModel "locker-booking/models/location"
	"locker-booking/services/geocode"
	"locker-booking/types"
	locationTypes "locker-booking/types/location"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocationController is the back-office CRUD surface for locations.
type LocationController struct {
	db       *gorm.DB
	geocoder *geocode.Client
}

func NewLocationController(db *gorm.DB, geocoder *geocode.Client) *LocationController {
	return &LocationController{db: db, geocoder: geocoder}
}

// geocodeInto resolves the location's address and writes the coordinates.
// Failures are logged and swallowed: the location keeps its previous (or
// zero) coordinates and the save proceeds.
func (lc *LocationController) geocodeInto(c *fiber.Ctx, loc *locationModel.Location) {
	lat, lng, err := lc.geocoder.Lookup(c.Context(), loc.FullAddress())
	if err != nil {
		metrics.IncGeocodeLookup("error")
		logger.Warning(fmt.Sprintf("Geocoding failed for location %q: %v", loc.Name, err))
		return
	}
	metrics.IncGeocodeLookup("ok")
	loc.Latitude = lat
	loc.Longitude = lng
}

// List returns all locations.
func (lc *LocationController) List(c *fiber.Ctx) error {
	var locations []locationModel.Location
	if err := lc.db.Order("name").Find(&locations).Error; err != nil {
		logger.Error("Failed to list locations", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list locations",
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Locations fetched successfully",
		Data:    locations,
	})
}

// Create stores a new location, geocoding its address best effort.
func (lc *LocationController) Create(c *fiber.Ctx) error {
	var req locationTypes.LocationRequest
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

	loc := locationModel.Location{
		Name:          req.Name,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Zip:           req.Zip,
		Description:   req.Description,
	}
	if req.Image != "" {
		loc.Image = &req.Image
	}

	lc.geocodeInto(c, &loc)

	if err := lc.db.Create(&loc).Error; err != nil {
		logger.Error("Failed to create location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create location",
		})
	}

	logger.Success(fmt.Sprintf("Location created successfully with ID: %d", loc.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Location created successfully",
		Data:    loc,
	})
}

// Update replaces a location's fields and re-geocodes when the address
// changed.
func (lc *LocationController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid location id",
		})
	}

	var req locationTypes.LocationRequest
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

	var loc locationModel.Location
	if err := lc.db.First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Location not found",
			})
		}
		logger.Error("Failed to load location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update location",
		})
	}

	addressChanged := loc.StreetAddress != req.StreetAddress ||
		loc.City != req.City || loc.State != req.State || loc.Zip != req.Zip

	loc.Name = req.Name
	loc.StreetAddress = req.StreetAddress
	loc.City = req.City
	loc.State = req.State
	loc.Zip = req.Zip
	loc.Description = req.Description
	if req.Image != "" {
		loc.Image = &req.Image
	}

	if addressChanged {
		lc.geocodeInto(c, &loc)
	}

	if err := lc.db.Save(&loc).Error; err != nil {
		logger.Error("Failed to update location", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update location",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Location updated successfully",
		Data:    loc,
	})
}

// Delete removes a location; its lockers and their bookings cascade.
func (lc *LocationController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid location id",
		})
	}

	result := lc.db.Delete(&locationModel.Location{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete location", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete location",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Location not found",
		})
	}

	logger.Success(fmt.Sprintf("Location deleted successfully with ID: %d", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Location deleted successfully",
	})
}
