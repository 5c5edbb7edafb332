package user

import (
	"errors"

	"locker-booking/database"
	"locker-booking/logger"
	customerModel "locker-booking/models/customer"
	"locker-booking/types"
	customerTypes "locker-booking/types/customer"
	"locker-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated account together with its optional
// customer profile.
func GetProfile(c *fiber.Ctx) error {
	u, err := utils.CurrentUser(c)
	if err != nil {
		logger.Error("Failed to load current user", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid token data",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var profile customerModel.Customer
	err = database.DB.Where("user_id = ?", u.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Error fetching customer profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Error fetching profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	data := fiber.Map{
		"user": u,
	}
	if profile.ID != 0 {
		data["customer"] = profile
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    data,
	})
}

// UpdateProfile creates or updates the customer profile for the
// authenticated account.
func UpdateProfile(c *fiber.Ctx) error {
	u, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid token data",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req customerTypes.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	var profile customerModel.Customer
	err = database.DB.Where("user_id = ?", u.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Error fetching customer profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Error updating profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	profile.UserID = u.ID
	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.Email = req.Email

	if err := database.DB.Save(&profile).Error; err != nil {
		logger.Error("Failed to save customer profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Error updating profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Customer profile updated for user: " + u.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile updated successfully",
		Status:  fiber.StatusOK,
		Data:    profile,
	})
}
