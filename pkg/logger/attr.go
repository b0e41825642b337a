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

// UserID records the member identifier under the key "user_id".
func UserID(id string) slog.Attr {
	return slog.String("user_id", id)
}

// Tier records a membership tier under the key "tier".
func Tier[T ~string](tier T) slog.Attr {
	return slog.String("tier", string(tier))
}

// Feature records a feature name under the key "feature".
func Feature[F ~string](feature F) slog.Attr {
	return slog.String("feature", string(feature))
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count records a counter value under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}
