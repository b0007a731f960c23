package calculator

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyKind identifies which operation a key press triggers
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyPoint
	KeyOperator
	KeyClear
	KeyDelete
	KeyEquals
)

// Key is a single button press on the calculator
type Key struct {
	Kind     KeyKind
	Digit    byte
	Operator Operator
}

// Button labels for the non-digit keys
const (
	LabelClear  = "AC"
	LabelDelete = "DEL"
	LabelEquals = "="
	LabelPoint  = "."
)

// ParseKey converts a button label to a Key
func ParseKey(label string) (Key, error) {
	switch strings.ToUpper(label) {
	case LabelClear, "C":
		return Key{Kind: KeyClear}, nil
	case LabelDelete, "DELETE", "BACKSPACE", "⌫":
		return Key{Kind: KeyDelete}, nil
	case LabelEquals, "ENTER":
		return Key{Kind: KeyEquals}, nil
	case LabelPoint, ",":
		return Key{Kind: KeyPoint}, nil
	}

	if len(label) == 1 && label[0] >= '0' && label[0] <= '9' {
		return Key{Kind: KeyDigit, Digit: label[0]}, nil
	}

	if op, err := ParseOperator(label); err == nil {
		return Key{Kind: KeyOperator, Operator: op}, nil
	}

	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// ParseKeys tokenizes a key sequence such as "10 + 5 =", "10+5=" or "AC 7 DEL".
// Whitespace-separated words that name a key are taken whole; any other word
// is split into single-character keys.
func ParseKeys(sequence string) ([]Key, error) {
	var keys []Key
	for _, word := range strings.FieldsFunc(sequence, unicode.IsSpace) {
		if key, err := ParseKey(word); err == nil {
			keys = append(keys, key)
			continue
		}
		for _, r := range word {
			key, err := ParseKey(string(r))
			if err != nil {
				return nil, fmt.Errorf("failed to parse key sequence %q: %w", sequence, err)
			}
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Label returns the button label for the key
func (k Key) Label() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyPoint:
		return LabelPoint
	case KeyOperator:
		return k.Operator.Glyph()
	case KeyClear:
		return LabelClear
	case KeyDelete:
		return LabelDelete
	case KeyEquals:
		return LabelEquals
	default:
		return ""
	}
}

// String implements fmt.Stringer
func (k Key) String() string {
	return k.Label()
}
