package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultTransform = "scale(1) rotate(0deg) translateX(0) translateY(0)"

func TestParseTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Transform
	}{
		{
			name:  "default text transform",
			input: defaultTransform,
			want:  Transform{Scale: "1", Rotate: "0", TranslateX: "0", TranslateY: "0"},
		},
		{
			name:  "px values stay raw",
			input: "translateX(10px) translateZ(-4px)",
			want:  Transform{TranslateX: "10px", TranslateZ: "-4px"},
		},
		{
			name:  "unknown functions dropped",
			input: "skewX(10deg) scale(0.5) rotateY(20deg)",
			want:  Transform{Scale: "0.5"},
		},
		{
			name:  "empty",
			input: "",
			want:  Transform{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTransform(tt.input))
		})
	}
}

func TestUpdateTransform(t *testing.T) {
	tests := []struct {
		name  string
		input string
		fn    string
		value string
		want  string
	}{
		{
			name:  "rotate gets deg",
			input: "scale(1) rotate(0deg)",
			fn:    Rotate,
			value: "45",
			want:  "scale(1) rotate(45deg)",
		},
		{
			name:  "rotate value already in deg",
			input: "rotate(10deg)",
			fn:    Rotate,
			value: "90deg",
			want:  "rotate(90deg)",
		},
		{
			name:  "scale",
			input: defaultTransform,
			fn:    Scale,
			value: "1.5",
			want:  "scale(1.5) rotate(0deg) translateX(0) translateY(0)",
		},
		{
			name:  "only the first occurrence replaced",
			input: "scale(1) translateX(0) scale(2)",
			fn:    Scale,
			value: "3",
			want:  "scale(3) translateX(0) scale(2)",
		},
		{
			name:  "absent function is not inserted",
			input: "scale(1)",
			fn:    Rotate,
			value: "45",
			want:  "scale(1)",
		},
		{
			name:  "prefix match ignored",
			input: "rescale(2) scale(1)",
			fn:    Scale,
			value: "4",
			want:  "rescale(2) scale(4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpdateTransform(tt.input, tt.fn, tt.value))
		})
	}
}

func TestTransformRoundTrip(t *testing.T) {
	input := "scale(1) rotate(0deg) translateX(0) translateY(0) translateZ(0)"
	values := map[string]string{
		Scale:      "0.75",
		Rotate:     "-30",
		TranslateX: "12px",
		TranslateY: "-8px",
		TranslateZ: "3px",
	}

	for _, fn := range TransformFuncs {
		t.Run(fn, func(t *testing.T) {
			updated := UpdateTransform(input, fn, values[fn])
			got, ok := ParseTransform(updated).Get(fn)
			require.True(t, ok)
			assert.Equal(t, values[fn], got)
		})
	}
}

func TestTransformFloat(t *testing.T) {
	tr := ParseTransform("scale(0.5) rotate(45deg) translateX(10px)")

	v, ok := tr.Float(Scale)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	v, ok = tr.Float(Rotate)
	require.True(t, ok)
	assert.Equal(t, 45.0, v)

	_, ok = tr.Float(TranslateX)
	assert.False(t, ok, "px values are not plain numbers")

	_, ok = tr.Float(TranslateY)
	assert.False(t, ok)
}

func TestUpdateTransformFloat(t *testing.T) {
	assert.Equal(t, "scale(0.5) rotate(0deg)", UpdateTransformFloat("scale(1) rotate(0deg)", Scale, 0.5))
	assert.Equal(t, "scale(1) rotate(90deg)", UpdateTransformFloat("scale(1) rotate(0deg)", Rotate, 90))
}
