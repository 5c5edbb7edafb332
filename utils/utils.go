package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"locker-booking/database"
	userModel "locker-booking/models/user"
	"locker-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a day-truncated time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t, nil
}

// Today returns the current day at midnight.
func Today() time.Time {
	return now.BeginningOfDay()
}

// CurrentUserID extracts the authenticated user's id from the JWT claims the
// auth middleware stored on the request context.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return 0, errors.New("no authenticated user on request")
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return 0, errors.New("user id missing from token")
	}
	return uint(uid), nil
}

// CurrentUser loads the authenticated user's row from the database.
func CurrentUser(c *fiber.Ctx) (*userModel.User, error) {
	id, err := CurrentUserID(c)
	if err != nil {
		return nil, err
	}

	var u userModel.User
	if err := database.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &u, nil
}

// sanitizeRequestBody strips file content and oversized payloads from request
// bodies before they reach the audit log.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})

		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
			for key, files := range form.File {
				fileInfo := make([]map[string]interface{}, len(files))
				for i, file := range files {
					fileInfo[i] = map[string]interface{}{
						"filename": file.Filename,
						"size":     file.Size,
						"content":  "[FILE_CONTENT_REMOVED]",
					}
				}
				formData[key] = fileInfo
			}
		}

		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 10000 {
		return body[:10000] + "...[TRUNCATED]"
	}
	return body
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for
// the async request logger.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
