package core

import (
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrInvalidMarket market descriptor is malformed
	ErrInvalidMarket ErrorCode = 100001

	// ErrRangeOutOfBounds band count outside [min_bands, max_bands]
	ErrRangeOutOfBounds ErrorCode = 100100
	// ErrLoanNotFound no loan
	ErrLoanNotFound ErrorCode = 100101
	// ErrLoanAlreadyExists loan exists
	ErrLoanAlreadyExists ErrorCode = 100102
	// ErrAlreadyInLiquidation position is in soft liquidation
	ErrAlreadyInLiquidation ErrorCode = 100103
	// ErrNotInLiquidation position is not in soft liquidation
	ErrNotInLiquidation ErrorCode = 100104
	// ErrInvalidIndex swap direction
	ErrInvalidIndex ErrorCode = 100105
	// ErrApprovalRequired allowance missing for gas estimation
	ErrApprovalRequired ErrorCode = 100106
	// ErrAmountExceedsLiquidatable partial liquidation amount too large
	ErrAmountExceedsLiquidatable ErrorCode = 100107
	// ErrAmountMustBePositive partial liquidation amount too small
	ErrAmountMustBePositive ErrorCode = 100108
	// ErrSlippageOutOfRange slippage not in (0, 100]
	ErrSlippageOutOfRange ErrorCode = 100109
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                   "unknown",
	ErrInvalidMarket:             "invalid market",
	ErrRangeOutOfBounds:          "range out of bounds",
	ErrLoanNotFound:              "loan not found",
	ErrLoanAlreadyExists:         "loan already exists",
	ErrAlreadyInLiquidation:      "already in liquidation",
	ErrNotInLiquidation:          "not in liquidation",
	ErrInvalidIndex:              "invalid index",
	ErrApprovalRequired:          "approval required",
	ErrAmountExceedsLiquidatable: "amount exceeds liquidatable",
	ErrAmountMustBePositive:      "amount must be positive",
	ErrSlippageOutOfRange:        "slippage out of range",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return e.String()
}

// Error carries the offending value and the violated bound along with the code
type Error struct {
	Code  ErrorCode
	Field string
	Value string
	Bound string
}

// NewError new error with context
func NewError(code ErrorCode, field string, value, bound interface{}) *Error {
	err := &Error{
		Code:  code,
		Field: field,
	}

	if value != nil {
		err.Value = fmt.Sprint(value)
	}

	if bound != nil {
		err.Bound = fmt.Sprint(bound)
	}

	return err
}

func (e *Error) Error() string {
	msg := e.Code.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s=%s", msg, e.Field, e.Value)
	}

	if e.Bound != "" {
		msg = fmt.Sprintf("%s (bound %s)", msg, e.Bound)
	}

	return msg
}

// Unwrap so errors.Is(err, ErrXxx) matches on the code
func (e *Error) Unwrap() error {
	return e.Code
}
