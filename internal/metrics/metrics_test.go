package metrics

import (
	"testing"
	"time"
)

func TestRegisterIdempotent(t *testing.T) {
	Register()
	Register() // must not panic on double registration
}

func TestCountersAcceptLabels(t *testing.T) {
	Register()
	IncHTTP("/api/rooms", 200)
	IncStorage("rooms", "load")
	ObserveHTTP("/api/rooms", 5*time.Millisecond)
}
