package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Form records the form name under the key "form".
func Form(name string) slog.Attr {
	return slog.String("form", name)
}

// Field records the field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Session records the form session id under the key "session_id".
func Session(id string) slog.Attr {
	return slog.String("session_id", id)
}

// Event records the field event under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Valid records aggregate validity under the key "valid".
func Valid(v bool) slog.Attr {
	return slog.Bool("valid", v)
}

// Transition groups the from and to states of a state change.
func Transition(from, to string) slog.Attr {
	return slog.Group("transition", slog.String("from", from), slog.String("to", to))
}
