package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrAuthMissing, "No authentication token found"},
		{fmt.Errorf("%w: symbol is required", ErrInvalidTradeInput), "Please enter valid symbol and number of shares"},
		{fmt.Errorf("%w: timeout", ErrTradeFailed), "Error executing trade"},
		{ErrEmptyResponse, "No data received from server"},
		{&ServiceError{Status: 400, Message: "Insufficient funds"}, "Insufficient funds"},
		{fmt.Errorf("refresh after trade: %w", &ServiceError{Status: 401, Message: "Invalid token"}), "Invalid token"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestAction_Valid(t *testing.T) {
	if !ActionBuy.Valid() || !ActionSell.Valid() {
		t.Error("buy and sell must be valid")
	}
	if Action("BUY").Valid() || Action("").Valid() {
		t.Error("only lowercase buy/sell are valid")
	}
}
