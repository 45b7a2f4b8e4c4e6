package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Error codes returned by the status API.
const (
	// Validation errors
	ErrInvalidRequest      = "VAL_001" // Malformed request
	ErrMissingRequiredData = "VAL_002" // Required data absent
	ErrInvalidDate         = "VAL_003" // Calendar-impossible date
	ErrUnknownMonth        = "VAL_004" // Month token not recognized
	ErrUnrecognizedFormat  = "VAL_005" // Date expression matches no grammar

	// Authorization errors
	ErrInvalidAPIKey = "AUTH_001" // API key missing or wrong

	// Server errors
	ErrInternalServer        = "SRV_001" // Internal error
	ErrDataSourceUnavailable = "SRV_002" // Lead data source unreachable
)

var httpStatusMap = map[string]int{
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidDate:           http.StatusBadRequest,
	ErrUnknownMonth:          http.StatusBadRequest,
	ErrUnrecognizedFormat:    http.StatusBadRequest,
	ErrInvalidAPIKey:         http.StatusUnauthorized,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDataSourceUnavailable: http.StatusServiceUnavailable,
}

// APIError is the standard error envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// WriteError writes the standard envelope with the status mapped from the code.
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
