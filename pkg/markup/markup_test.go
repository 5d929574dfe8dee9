package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Plain", "Bright citrus spritz", "Bright citrus spritz"},
		{"Tags", "<p>Bright <strong>citrus</strong> spritz</p>", "Bright citrus spritz"},
		{"Script", "<script>alert(1)</script>Botanical", "Botanical"},
		{"Entities", "Gin &amp; Tonic", "Gin & Tonic"},
		{"Whitespace", "<p>one</p>\n\n  <p>two</p>", "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
