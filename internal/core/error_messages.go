// Error codes reference.
//
// Typed errors from errors.go map first; anything else is matched against
// errorPatterns case-insensitively. Codes are grouped by category:
//
//	VAL001 - Required field is empty or missing
//	VAL002 - Field has the wrong type
//	VAL003 - Unknown column in a preference list
//	NF001  - Record or module not found
//	DB002  - Unique value already exists (barcode)
//	DB004  - Connection refused
//	DB005  - Connection reset
//	DB006  - Timeout
//	DB007  - Deadlock
//	FILE001 - Upload exceeds the size limit
//	FILE002 - File is not a readable workbook
//	FILE004 - No file in the upload form
//	FILE005 - Empty upload
//	UPL004 - Request cancelled
//	UPL005 - Request timed out
//	RATE001 - Rate limited
//	ERR000 - Anything else; check the logs for the technical error
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched in order; the first hit wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Database Connection Errors (DB004-DB007)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the workbook into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the workbook into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an .xlsx file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a workbook with a header row and data rows",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Request Errors (UPL004-UPL005)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Validation, not-found, constraint and parse errors get a dedicated message;
// everything else falls back to pattern matching and then ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return validationMessage(ve)
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return UserMessage{
			Message: nf.Entity + " not found",
			Action:  "Refresh the list and try again",
			Code:    "NF001",
		}
	}

	var ce *ConstraintError
	if errors.As(err, &ce) {
		return UserMessage{
			Message: fmt.Sprintf("A record with this %s already exists", ce.Field),
			Action:  fmt.Sprintf("Use a different %s or leave it blank to generate one", ce.Field),
			Code:    "DB002",
		}
	}

	var pe *ParseError
	if errors.As(err, &pe) {
		return UserMessage{
			Message: "The uploaded file is not a readable spreadsheet",
			Action:  "Upload an .xlsx workbook with a header row",
			Code:    "FILE002",
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func validationMessage(ve *ValidationError) UserMessage {
	msg := UserMessage{
		Message: ve.Message,
		Action:  "Correct the value and submit again",
		Code:    "VAL002",
	}
	switch {
	case strings.Contains(ve.Message, "is required"):
		msg.Code = "VAL001"
	case strings.Contains(ve.Message, "unknown column"):
		msg.Code = "VAL003"
		msg.Action = "Choose columns from the module's column list"
	}
	if ve.Row > 0 {
		msg.Message = fmt.Sprintf("Row %d: %s", ve.Row, ve.Message)
		msg.Action = "Fix the row in the workbook and import it again"
	}
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
