package validator

import (
	"errors"
	"fmt"
)

// Config holds the rule parameters and messages of one field.
// A zero parameter disables its rule. IsNumeric is tri-state: nil disables
// the rule, true rejects non-numeric values, false rejects numeric values.
type Config struct {
	IsRequired   bool                `yaml:"isRequired,omitempty" json:"isRequired,omitempty"`
	IsNumeric    *bool               `yaml:"isNumeric,omitempty" json:"isNumeric,omitempty"`
	IsNotNumeric bool                `yaml:"isNotNumeric,omitempty" json:"isNotNumeric,omitempty"`
	MinLength    int                 `yaml:"minLength,omitempty" json:"minLength,omitempty"`
	MaxLength    int                 `yaml:"maxLength,omitempty" json:"maxLength,omitempty"`
	IsEmail      bool                `yaml:"isEmail,omitempty" json:"isEmail,omitempty"`
	Messages     map[RuleName]string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Bool returns a pointer to b, for Config.IsNumeric.
func Bool(b bool) *bool {
	return &b
}

// Check reports configuration mistakes: negative lengths, an inverted length
// range and messages keyed by unknown rules.
func (c Config) Check() error {
	var errs []error
	if c.MinLength < 0 {
		errs = append(errs, fmt.Errorf("%w: minLength %d", ErrInvalidParameter, c.MinLength))
	}
	if c.MaxLength < 0 {
		errs = append(errs, fmt.Errorf("%w: maxLength %d", ErrInvalidParameter, c.MaxLength))
	}
	if c.MinLength > 0 && c.MaxLength > 0 && c.MinLength > c.MaxLength {
		errs = append(errs, fmt.Errorf("%w: minLength %d greater than maxLength %d", ErrInvalidParameter, c.MinLength, c.MaxLength))
	}
	for name := range c.Messages {
		if !name.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownRule, name))
		}
	}
	return errors.Join(errs...)
}

// Active returns the configured rules in evaluation order.
func (c Config) Active() []RuleName {
	var names []RuleName
	for _, name := range order {
		if c.enabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// Message returns the configured message for a rule. When the numeric
// rejection is switched on by isNumeric: false, the isNumeric message is
// reported, falling back to the isNotNumeric one.
func (c Config) Message(name RuleName) string {
	if name == IsNotNumeric && c.IsNumeric != nil && !*c.IsNumeric {
		if msg := c.Messages[IsNumeric]; msg != "" {
			return msg
		}
	}
	return c.Messages[name]
}

func (c Config) enabled(name RuleName) bool {
	switch name {
	case IsRequired:
		return c.IsRequired
	case IsNumeric:
		return c.IsNumeric != nil && *c.IsNumeric
	case IsNotNumeric:
		return c.IsNotNumeric || (c.IsNumeric != nil && !*c.IsNumeric)
	case MinLength:
		return c.MinLength > 0
	case MaxLength:
		return c.MaxLength > 0
	case IsEmail:
		return c.IsEmail
	}
	return false
}

// Rules binds the active rules of cfg to a value, in evaluation order.
func Rules(cfg Config, field, value string) []Rule {
	active := cfg.Active()
	rules := make([]Rule, 0, len(active))
	for _, name := range active {
		switch name {
		case IsRequired:
			rules = append(rules, Required(field, value))
		case IsNumeric:
			rules = append(rules, Numeric(field, value))
		case IsNotNumeric:
			rules = append(rules, NotNumeric(field, value))
		case MinLength:
			rules = append(rules, MinLen(field, value, cfg.MinLength))
		case MaxLength:
			rules = append(rules, MaxLen(field, value, cfg.MaxLength))
		case IsEmail:
			rules = append(rules, Email(field, value))
		}
	}
	return rules
}

// Evaluate returns every triggered rule in evaluation order, whether or not
// a message is configured for it. Unconfigured rules are never evaluated.
func Evaluate(cfg Config, value string) []RuleName {
	var triggered []RuleName
	for _, rule := range Rules(cfg, "", value) {
		if !rule.Check() {
			triggered = append(triggered, rule.Error.Rule)
		}
	}
	return triggered
}

// Errors returns the configured messages of triggered rules in evaluation
// order. Triggered rules without a message are not reported.
func Errors(cfg Config, value string) []string {
	var messages []string
	for _, name := range Evaluate(cfg, value) {
		if msg := cfg.Message(name); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}

// FirstError returns the message of the earliest triggered rule that has one.
func FirstError(cfg Config, value string) (string, bool) {
	messages := Errors(cfg, value)
	if len(messages) == 0 {
		return "", false
	}
	return messages[0], true
}

// Validate evaluates cfg against value and returns ValidationErrors carrying
// the configured messages, or nil.
func Validate(cfg Config, field, value string) error {
	rules := Rules(cfg, field, value)
	reported := rules[:0]
	for _, rule := range rules {
		msg := cfg.Message(rule.Error.Rule)
		if msg == "" {
			continue
		}
		rule.Error.Message = msg
		reported = append(reported, rule)
	}
	return Apply(reported...)
}
