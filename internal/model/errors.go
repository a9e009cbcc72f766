package model

import (
	"errors"
	"fmt"
)

var (
	ErrAuthMissing       = errors.New("no authentication token found")
	ErrEmptyResponse     = errors.New("no data received from server")
	ErrInvalidTradeInput = errors.New("please enter valid symbol and number of shares")
	ErrTradeFailed       = errors.New("error executing trade")
	ErrUnknownPeriod     = errors.New("unknown period")
	ErrMalformedResponse = errors.New("malformed response")
	ErrTransport         = errors.New("request failed")
)

// ServiceError is a failure reported by the service with an {"error": "..."}
// body. Message is shown to the user verbatim.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.Message)
}

// UserMessage turns err into the text shown to the user. Server-provided
// messages win over the generic per-kind text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *ServiceError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	switch {
	case errors.Is(err, ErrAuthMissing):
		return "No authentication token found"
	case errors.Is(err, ErrEmptyResponse):
		return "No data received from server"
	case errors.Is(err, ErrInvalidTradeInput):
		return "Please enter valid symbol and number of shares"
	case errors.Is(err, ErrTradeFailed):
		return "Error executing trade"
	case errors.Is(err, ErrUnknownPeriod):
		return "Unknown chart period"
	case errors.Is(err, ErrMalformedResponse):
		return "Unexpected response from server"
	case errors.Is(err, ErrTransport):
		return "Failed to reach the trading service"
	}
	return err.Error()
}
