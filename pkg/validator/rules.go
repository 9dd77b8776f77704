package validator

import "fmt"

// RuleName identifies a rule of the fixed rule set.
type RuleName string

const (
	IsRequired   RuleName = "isRequired"
	IsNumeric    RuleName = "isNumeric"
	IsNotNumeric RuleName = "isNotNumeric"
	MinLength    RuleName = "minLength"
	MaxLength    RuleName = "maxLength"
	IsEmail      RuleName = "isEmail"
)

// order is the evaluation order. The reported error is always the earliest
// triggered rule that has a message.
var order = [...]RuleName{IsRequired, IsNumeric, IsNotNumeric, MinLength, MaxLength, IsEmail}

// Order returns the rule names in evaluation order.
func Order() []RuleName {
	out := make([]RuleName, len(order))
	copy(out, order[:])
	return out
}

// Index returns the position of the rule in the evaluation order, or -1.
func (r RuleName) Index() int {
	for i, name := range order {
		if name == r {
			return i
		}
	}
	return -1
}

func (r RuleName) Valid() bool {
	return r.Index() >= 0
}

func (r RuleName) String() string {
	return string(r)
}

// ParseRuleName converts a string into a RuleName.
func ParseRuleName(s string) (RuleName, error) {
	r := RuleName(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, s)
	}
	return r, nil
}
