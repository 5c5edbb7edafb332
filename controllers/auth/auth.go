package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"locker-booking/constants"
	"locker-booking/logger"
	userModel "locker-booking/models/user"
	"locker-booking/types"
	"locker-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthController handles local account registration and sessions.
type AuthController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, loggerInstance: asyncLogger}
}

// setSecureCookie sets the session cookie, secure only in production so local
// development over plain HTTP keeps working.
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv(constants.EnvAppEnv) == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a local account and logs it in.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req types.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error("Invalid register request", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to register user",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Role:         userModel.RoleCustomer,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		newUser.Email = &email
	}

	if err := h.db.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Username or email already taken",
			Status:  fiber.StatusConflict,
		})
	}

	token, err := utils.IssueToken(&newUser)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Registered but failed to start session",
			Status:  fiber.StatusInternalServerError,
		})
	}
	h.setSecureCookie(c, "access", token, int((24 * time.Hour).Seconds()))

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User registered successfully: " + newUser.Username)

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Registered successfully",
		Status:  fiber.StatusCreated,
		Token:   token,
		Data:    newUser,
	})
}

// Login verifies credentials and issues a session token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req types.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: fmt.Sprintf("Error parsing request body: %v", err),
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var u userModel.User
	err := h.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&u).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Database error during login", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid username or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.IssueToken(&u)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to start session",
			Status:  fiber.StatusInternalServerError,
		})
	}
	h.setSecureCookie(c, "access", token, int((24 * time.Hour).Seconds()))

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User logged in successfully: " + u.Username)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged in successfully",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    u,
	})
}

// LogOut clears the session cookie. Tokens already handed out simply expire.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logged out successfully",
		Status:  fiber.StatusOK,
	})
}
