package utils

import (
	"encoding/json"
	"strconv"
	"time"

	"courier-admin/types"

	"github.com/gofiber/fiber/v2"
)

// Request body fields that must never reach the audit log.
var sensitiveFields = []string{"password", "current_password", "new_password"}

// sanitizeRequestBody masks credential fields in a JSON request body before
// it is logged. Non-JSON bodies are passed through untouched.
func sanitizeRequestBody(c *fiber.Ctx) string {
	body := c.Body()
	if len(body) == 0 {
		return ""
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return string(append([]byte(nil), body...))
	}

	for _, field := range sensitiveFields {
		if _, ok := parsed[field]; ok {
			parsed[field] = "********"
		}
	}

	sanitized, err := json.Marshal(parsed)
	if err != nil {
		return ""
	}
	return string(sanitized)
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
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

// ParseIDParam reads a numeric :id route parameter.
func ParseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
