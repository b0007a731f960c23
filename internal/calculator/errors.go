package calculator

import "errors"

// Sentinel errors returned at the boundary of the calculator
var (
	// ErrInvalidToken is returned when a token other than a digit or a decimal point is appended.
	ErrInvalidToken = errors.New("invalid digit token")

	// ErrUnknownOperator is returned for operator tokens outside + - * /.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownKey is returned when a key label does not name a calculator button.
	ErrUnknownKey = errors.New("unknown key")

	// ErrInvalidCalculation is returned when a calculation is not of the form "a op b".
	ErrInvalidCalculation = errors.New("invalid calculation")
)
