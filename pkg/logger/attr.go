package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Group nests attrs under name.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

func RequestID(id string) slog.Attr { return nonEmpty("request_id", id) }

func VisitorID(id string) slog.Attr { return nonEmpty("visitor_id", id) }

func UserID(id string) slog.Attr { return nonEmpty("user_id", id) }

func CustomerID(id string) slog.Attr { return nonEmpty("customer_id", id) }

func PlanID(id string) slog.Attr { return nonEmpty("plan_id", id) }

func PriceID(id string) slog.Attr { return nonEmpty("price_id", id) }

func SessionID(id string) slog.Attr { return nonEmpty("session_id", id) }

func SubscriptionID(id string) slog.Attr { return nonEmpty("subscription_id", id) }

// Generation records a catalog load generation.
func Generation(n uint64) slog.Attr { return slog.Uint64("generation", n) }

// State records a checkout state name.
func State(name string) slog.Attr { return nonEmpty("state", name) }

func nonEmpty(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
