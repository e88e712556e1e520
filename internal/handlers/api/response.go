package api

import (
	"github.com/gofiber/fiber/v3"
)

// ErrorCode is the machine-readable reason carried by error envelopes.
type ErrorCode string

const (
	CodeBadRequest   ErrorCode = "bad_request"
	CodeInvalidSite  ErrorCode = "invalid_site"
	CodeInvalidRange ErrorCode = "invalid_range"
	CodeNotFound     ErrorCode = "not_found"
	CodeRateLimited  ErrorCode = "rate_limited"
	CodeInternal     ErrorCode = "internal"
)

// Envelope is the body of every /api response. Data is set on success,
// Error and Code on failure.
type Envelope struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  string    `json:"error,omitempty"`
	Code   ErrorCode `json:"code,omitempty"`
}

// CodeForStatus maps an HTTP status to the code used when a handler did not
// pick a more specific one.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == fiber.StatusNotFound:
		return CodeNotFound
	case status == fiber.StatusTooManyRequests:
		return CodeRateLimited
	case status == fiber.StatusUnprocessableEntity:
		return CodeInvalidRange
	case status >= 400 && status < 500:
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

// WriteError sends an error envelope with the given status.
func WriteError(c fiber.Ctx, status int, code ErrorCode, message string) error {
	return c.Status(status).JSON(Envelope{
		Status: "error",
		Error:  message,
		Code:   code,
	})
}

func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(Envelope{Status: "ok", Data: data})
}

func jsonError(c fiber.Ctx, status int, code ErrorCode, message string) error {
	return WriteError(c, status, code, message)
}
