package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	return &Settings{
		Import: ImportSettings{
			Enabled:             true,
			DropDir:             "shoes/",
			UploadDir:           "uploads/",
			Interval:            10 * time.Second,
			Settle:              5 * time.Second,
			BatchSize:           50,
			BatchPause:          time.Second,
			SimilarityThreshold: 0.85,
			MinImages:           1,
			LedgerPath:          ".processed-images.json",
			DefaultMSRP:         120,
			DefaultPrice:        100,
		},
	}
}

func TestValidateSettingsAcceptsDefaults(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsBrokenValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"threshold above one", func(s *Settings) { s.Import.SimilarityThreshold = 1.5 }},
		{"threshold negative", func(s *Settings) { s.Import.SimilarityThreshold = -0.1 }},
		{"zero batch size", func(s *Settings) { s.Import.BatchSize = 0 }},
		{"zero interval", func(s *Settings) { s.Import.Interval = 0 }},
		{"zero settle", func(s *Settings) { s.Import.Settle = 0 }},
		{"zero min images", func(s *Settings) { s.Import.MinImages = 0 }},
		{"empty drop dir", func(s *Settings) { s.Import.DropDir = "" }},
		{"empty upload dir", func(s *Settings) { s.Import.UploadDir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			settings := validSettings()
			tt.mutate(settings)
			require.Error(t, ValidateSettings(settings))
		})
	}
}

func TestValidateSettingsBoundaryThreshold(t *testing.T) {
	t.Parallel()

	settings := validSettings()
	settings.Import.SimilarityThreshold = 0
	assert.NoError(t, ValidateSettings(settings))

	settings.Import.SimilarityThreshold = 1
	assert.NoError(t, ValidateSettings(settings))
}
