package calculator

import (
	"fmt"
	"strings"
)

// ParseCalculation converts a single binary calculation such as "10 ÷ 0" or
// "999999999 × 999999999" into the key presses that perform it on a cleared
// calculator: AC, the first operand, the operator, the second operand and =.
func ParseCalculation(calculation string) ([]Key, error) {
	parts := strings.Fields(calculation)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected \"<operand> <operator> <operand>\", got %q", ErrInvalidCalculation, calculation)
	}

	left, err := parseOperandKeys(parts[0])
	if err != nil {
		return nil, err
	}
	op, err := ParseOperator(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCalculation, err)
	}
	right, err := parseOperandKeys(parts[2])
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(left)+len(right)+3)
	keys = append(keys, Key{Kind: KeyClear})
	keys = append(keys, left...)
	keys = append(keys, Key{Kind: KeyOperator, Operator: op})
	keys = append(keys, right...)
	keys = append(keys, Key{Kind: KeyEquals})
	return keys, nil
}

// parseOperandKeys converts an operand typed on the keypad into digit and point keys
func parseOperandKeys(operand string) ([]Key, error) {
	keys := make([]Key, 0, len(operand))
	for i := 0; i < len(operand); i++ {
		switch ch := operand[i]; {
		case ch >= '0' && ch <= '9':
			keys = append(keys, Key{Kind: KeyDigit, Digit: ch})
		case ch == '.':
			keys = append(keys, Key{Kind: KeyPoint})
		default:
			return nil, fmt.Errorf("%w: operand %q is not a keypad number", ErrInvalidCalculation, operand)
		}
	}
	return keys, nil
}
