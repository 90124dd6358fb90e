package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
// This prevents accidental deletion of keys required for runtime or UI logic.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"StorageKey", config.StorageKey},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestLifeModel_Sanity pins the constants the week arithmetic depends on.
func TestLifeModel_Sanity(t *testing.T) {
	assert.Equal(t, 52, config.WeeksPerYear)
	assert.Equal(t, 7*24*time.Hour, config.Week)
	assert.LessOrEqual(t, config.MinLifespanYears, config.DefaultLifespanYears)
	assert.GreaterOrEqual(t, config.MaxLifespanYears, config.DefaultLifespanYears)
	assert.Less(t, config.EarlyThreshold, config.RecentThreshold)
	assert.Equal(t, "lifespan-tracker-data", config.StorageKey)
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-LifeWeeks/"), "UserAgent must start with AppName/")
}

// TestExportGeometry ensures the share image layout fits inside the canvas.
func TestExportGeometry(t *testing.T) {
	assert.Equal(t, 1080, config.ExportWidth)
	assert.Equal(t, 1350, config.ExportHeight)
	assert.Less(t, config.ExportGridTop, config.ExportGridBottom)
	assert.LessOrEqual(t, config.WeeksPerYear*config.ExportCellPitch, config.ExportWidth-2*config.ExportPadding)
}

// TestTimeoutsAndLimits ensures that operational constraints are reasonable.
func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPRetryWaitMin, config.HTTPRetryWaitMax)

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
