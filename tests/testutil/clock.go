package testutil

import (
	"time"

	"github.com/light-bringer/procat-admin/internal/pkg/clock"
)

// SessionEpoch is the instant test sessions are evaluated against.
var SessionEpoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// NewMockClock creates a clock fixed at SessionEpoch.
func NewMockClock() *clock.MockClock {
	return clock.NewMockClock(SessionEpoch)
}
