package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filename  string
		wantBrand string
		wantModel string
	}{
		{"brand and model keyword", "nike-dunk-low-white-1.jpg", "Nike", "Dunk Low"},
		{"underscore separators", "nike_dunk_low_2.jpg", "Nike", "Dunk Low"},
		{"hyphenated model keyword", "vans-sk8-hi-black.jpg", "Vans", "Sk8-Hi"},
		{"model number", "new-balance-990-grey.jpg", "New Balance", "990"},
		{"brand only takes following tokens", "puma-suede-classic.jpg", "Puma", "suede classic"},
		{"camera roll name", "IMG_9751.jpg", "Unknown Brand", "IMG 9751"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseFilename(tt.filename)
			assert.Equal(t, tt.wantBrand, got.Brand)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.Equal(t, tt.filename, got.Filename)
		})
	}
}
