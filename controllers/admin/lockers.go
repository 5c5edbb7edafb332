package admin

import (
	"errors"
	"fmt"

	"locker-booking/logger"
	lockerModel "locker-booking/models/locker"
	"locker-booking/types"
	lockerTypes "locker-booking/types/locker"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LockerController is the back-office CRUD surface for locker units.
type LockerController struct {
	db *gorm.DB
}

func NewLockerController(db *gorm.DB) *LockerController {
	return &LockerController{db: db}
}

// List returns all lockers, optionally filtered by location and status.
func (lc *LockerController) List(c *fiber.Ctx) error {
	q := lc.db.Preload("Location").Order("location_id, locker_number")
	if raw := c.Query("location"); raw != "" {
		q = q.Where("location_id = ?", raw)
	}
	if raw := c.Query("status"); raw != "" {
		if !lockerModel.LockerStatus(raw).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid status filter",
			})
		}
		q = q.Where("status = ?", raw)
	}

	var lockers []lockerModel.Locker
	if err := q.Find(&lockers).Error; err != nil {
		logger.Error("Failed to list lockers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to list lockers",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Lockers fetched successfully",
		Data:    lockers,
	})
}

// Create stores a new locker unit.
func (lc *LockerController) Create(c *fiber.Ctx) error {
	var req lockerTypes.LockerRequest
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

	unit := lockerModel.Locker{
		LockerNumber: req.LockerNumber,
		LocationID:   req.LocationID,
		Size:         lockerModel.LockerSize(req.Size),
		Status:       lockerModel.StatusAvailable,
		DailyPrice:   req.DailyPrice,
		Description:  req.Description,
	}
	if req.Status != "" {
		unit.Status = lockerModel.LockerStatus(req.Status)
	}
	if req.Image != "" {
		unit.Image = &req.Image
	}

	if err := lc.db.Create(&unit).Error; err != nil {
		logger.Error("Failed to create locker", err)
		// The (location, locker_number) pair is unique; a duplicate is the
		// common failure here.
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Failed to create locker; the locker number may already exist at this location",
		})
	}

	logger.Success(fmt.Sprintf("Locker created successfully with ID: %d", unit.ID))
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Locker created successfully",
		Data:    unit,
	})
}

// Update replaces a locker's fields, including its operational status.
func (lc *LockerController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid locker id",
		})
	}

	var req lockerTypes.LockerRequest
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

	var unit lockerModel.Locker
	if err := lc.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Locker not found",
			})
		}
		logger.Error("Failed to load locker", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update locker",
		})
	}

	unit.LockerNumber = req.LockerNumber
	unit.LocationID = req.LocationID
	unit.Size = lockerModel.LockerSize(req.Size)
	unit.DailyPrice = req.DailyPrice
	unit.Description = req.Description
	if req.Status != "" {
		unit.Status = lockerModel.LockerStatus(req.Status)
	}
	if req.Image != "" {
		unit.Image = &req.Image
	}

	if err := lc.db.Save(&unit).Error; err != nil {
		logger.Error("Failed to update locker", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update locker",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Locker updated successfully",
		Data:    unit,
	})
}

// Delete removes a locker unit; its bookings cascade.
func (lc *LockerController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid locker id",
		})
	}

	result := lc.db.Delete(&lockerModel.Locker{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete locker", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete locker",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Locker not found",
		})
	}

	logger.Success(fmt.Sprintf("Locker deleted successfully with ID: %d", id))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Locker deleted successfully",
	})
}
