package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShadow(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Shadow
		wantOK bool
	}{
		{
			name:   "negative offset",
			input:  "2px -3px 4px #ffffff",
			want:   Shadow{OffsetX: 2, OffsetY: -3, Blur: 4, Color: "#ffffff"},
			wantOK: true,
		},
		{
			name:   "short hex",
			input:  "0px 0px 0px #fff",
			want:   Shadow{Color: "#fff"},
			wantOK: true,
		},
		{
			name:   "named color does not match",
			input:  "2px 2px red",
			wantOK: false,
		},
		{
			name:   "none",
			input:  "none",
			wantOK: false,
		},
		{
			name:   "negative blur does not match",
			input:  "1px 1px -1px #000000",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseShadow(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShadowString(t *testing.T) {
	s := Shadow{OffsetX: 2, OffsetY: -3, Blur: 4, Color: "#ffffff"}
	assert.Equal(t, "2px -3px 4px #ffffff", s.String())

	back, ok := ParseShadow(s.String())
	assert.True(t, ok)
	assert.Equal(t, s, back)
}

func TestIsShadowColor(t *testing.T) {
	for _, c := range []string{"#fff", "#000000", "#AbC12"} {
		assert.True(t, IsShadowColor(c), c)
	}
	for _, c := range []string{"", "fff", "#ff", "#1234567", "rgba(0,0,0,0.5)", "red", "#ggg"} {
		assert.False(t, IsShadowColor(c), c)
	}
}

func TestFirstShadow(t *testing.T) {
	assert.Equal(t, DefaultShadow, FirstShadow(""))
	assert.Equal(t, DefaultShadow, FirstShadow("none"))
	assert.Equal(t, DefaultShadow, FirstShadow("garbage"))
	assert.Equal(t,
		Shadow{OffsetX: 1, OffsetY: 2, Blur: 3, Color: "#000"},
		FirstShadow("1px 2px 3px #000, 4px 5px 6px #111"))
}
