package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Blue T-Shirt":        "blue-t-shirt",
		"  Trimmed  Name  ":   "trimmed-name",
		"Café au Lait":        "cafe-au-lait",
		"Piñata":              "pinata",
		"100% Cotton Socks":   "100-cotton-socks",
		"---weird---input---": "weird-input",
		"UPPER case":          "upper-case",
		"":                    "",
		"!!!":                 "",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input: %q", input)
	}
}
