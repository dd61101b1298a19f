package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	prevVersion, prevCommit, prevDate := BuildVersion, Commit, BuildDate
	t.Cleanup(func() { BuildVersion, Commit, BuildDate = prevVersion, prevCommit, prevDate })
	BuildVersion, Commit, BuildDate = version, commit, date
}

func TestBaseVersion(t *testing.T) {
	tests := []struct {
		name         string
		buildVersion string
		expected     string
	}{
		{"Describe", "1.7.8-11-g2300850", "v1.7"},
		{"MajorMinor", "2.3", "v2.3"},
		{"Major", "3", "v3.0"},
		{"Prefixed", "v0.4.1", "v0.4"},
		{"Default", "0.0.0", "v0.0"},
		{"Invalid", "1.2.beta", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.buildVersion, "abc123", "2024-01-01")
			assert.Equal(t, tt.expected, BaseVersion())
		})
	}
}

func TestString(t *testing.T) {
	setBuild(t, "v1.2", "abc123", "2024-01-01")
	assert.Equal(t, "1.2.0 (abc123) on 2024-01-01", String())

	setBuild(t, "dev", "abc123", "2024-01-01")
	assert.Equal(t, "dev (abc123) on 2024-01-01", String())
}
