// Package validator evaluates the declarative field rules used by formkit.
//
// The rule set is fixed and evaluated in this order:
//
//	isRequired, isNumeric, isNotNumeric, minLength, maxLength, isEmail
//
// A Config enables rules by carrying their parameters and maps rule names to
// the messages shown to the user. A rule without a parameter is skipped
// entirely; a triggered rule without a message is evaluated but never
// reported. The reported error of a field is the message of the earliest
// triggered rule that has one.
//
// # Usage
//
//	cfg := validator.Config{
//	    IsRequired: true,
//	    MinLength:  3,
//	    Messages: map[validator.RuleName]string{
//	        validator.IsRequired: "Required",
//	        validator.MinLength:  "too short",
//	    },
//	}
//
//	validator.Evaluate(cfg, "ab")   // [minLength]
//	validator.FirstError(cfg, "")   // "Required", true
//
// Every rule is also available as a Rule constructor (Required, Numeric,
// NotNumeric, MinLen, MaxLen, Email) that binds a value and carries a
// translation key, so rules compose with Apply:
//
//	err := validator.Apply(
//	    validator.Required("email", email),
//	    validator.Email("email", email),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // iterate over field-level messages or translate them
//	}
//
// The package holds no state and is safe for concurrent use.
package validator
