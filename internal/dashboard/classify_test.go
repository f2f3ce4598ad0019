package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		days        int
		expiryState string
		status      string
		statusState string
	}{
		{30, StateError, StatusActive, StateSuccess},
		{31, StateWarning, StatusActive, StateSuccess},
		{90, StateWarning, StatusActive, StateSuccess},
		{91, StateSuccess, StatusActive, StateSuccess},
		{0, StateError, StatusExpired, StateError},
		{-5, StateError, StatusExpired, StateError},
		{1, StateError, StatusActive, StateSuccess},
		{15, StateError, StatusActive, StateSuccess},
		{365, StateSuccess, StatusActive, StateSuccess},
	}

	for _, tt := range tests {
		got := ClassifyExpiry(tt.days)
		assert.Equal(t, tt.expiryState, got.ExpiryState, "expiryState for %d days", tt.days)
		assert.Equal(t, tt.status, got.Status, "status for %d days", tt.days)
		assert.Equal(t, tt.statusState, got.StatusState, "statusState for %d days", tt.days)
	}
}

// The two classifications are independent: a contract can be near expiry
// (Error severity) while still active and healthy on the status axis.
func TestClassifyExpiryAxesDisagree(t *testing.T) {
	got := ClassifyExpiry(15)
	assert.Equal(t, StateError, got.ExpiryState)
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, StateSuccess, got.StatusState)
}
