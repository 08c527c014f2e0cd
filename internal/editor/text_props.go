package editor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"clipdeck/internal/catalog"
	"clipdeck/internal/domain"
	"clipdeck/internal/style"
)

// DefaultTextProps are the properties a text item shows before it sets its own
func DefaultTextProps() Details {
	return Details{
		"backgroundColor":       "transparent",
		"border":                "none",
		"color":                 "#ffffff",
		"fontFamily":            "Roboto-Bold",
		"fontSize":              64.0,
		"fontStyle":             "normal",
		"fontWeight":            "normal",
		"height":                400.0,
		"letterSpacing":         "normal",
		"lineHeight":            "normal",
		"opacity":               100.0,
		"text":                  DefaultText,
		"textAlign":             "left",
		"textDecoration":        "none",
		"textShadow":            style.DefaultShadow.String(),
		"width":                 500.0,
		"wordSpacing":           "normal",
		"transform":             "scale(1) rotate(0deg) translateX(0) translateY(0)",
		"WebkitTextStrokeColor": "#ffffff",
		"WebkitTextStrokeWidth": "0px",
	}
}

// stringFields keep their value as typed; every other field is numeric
var stringFields = map[string]bool{
	"fontFamily":      true,
	"fontWeight":      true,
	"fontStyle":       true,
	"textAlign":       true,
	"text":            true,
	"backgroundColor": true,
	"color":           true,
	"textShadow":      true,
	"strokeColor":     true,
	"textDecoration":  true,
	"shadowColor":     true,
}

// TextState is what the inspector panel derives from the raw properties
type TextState struct {
	Bold                  bool         `json:"bold"`
	Italic                bool         `json:"italic"`
	Scale                 float64      `json:"scale"`  // percent
	Rotate                float64      `json:"rotate"` // degrees
	Shadow                style.Shadow `json:"shadow"`
	StrokeWidth           float64      `json:"strokeWidth"`
	StrokeColor           string       `json:"strokeColor"`
	Opacity               float64      `json:"opacity"`
	BackgroundTransparent bool         `json:"backgroundTransparent"`
}

// TextInspector edits the active text item. Each change is sent as one
// EDIT_OBJECT command and mirrored locally so follow-up edits compose.
type TextInspector struct {
	d     Dispatcher
	fonts *catalog.Registry
	props Details
}

// NewTextInspector mirrors details over the defaults
func NewTextInspector(d Dispatcher, fonts *catalog.Registry, details Details) *TextInspector {
	props := DefaultTextProps()
	for k, v := range details {
		props[k] = v
	}
	return &TextInspector{d: d, fonts: fonts, props: props}
}

// Props returns a copy of the mirrored properties
func (ti *TextInspector) Props() Details {
	return ti.props.Clone()
}

// State derives the panel controls from the properties
func (ti *TextInspector) State() TextState {
	st := TextState{
		Scale:       100,
		StrokeColor: ti.str("WebkitTextStrokeColor"),
		Opacity:     ti.num("opacity"),
	}

	family, variant, _ := strings.Cut(ti.str("fontFamily"), "-")
	st.Bold = strings.Contains(variant, "Bold") && ti.fonts.HasVariant(family, "Bold")
	st.Italic = strings.Contains(variant, "Italic") && ti.fonts.HasVariant(family, "Italic")

	tr := style.ParseTransform(ti.str("transform"))
	if v, ok := tr.Float(style.Scale); ok {
		st.Scale = v * 100
	}
	if v, ok := tr.Float(style.Rotate); ok {
		st.Rotate = v
	}

	st.Shadow = style.FirstShadow(ti.str("textShadow"))
	if w, err := strconv.ParseFloat(strings.TrimSuffix(ti.str("WebkitTextStrokeWidth"), "px"), 64); err == nil {
		st.StrokeWidth = w
	}
	st.BackgroundTransparent = ti.str("backgroundColor") == "transparent"
	return st
}

// Change applies one inspector field edit. field is either a raw property
// name or one of the derived controls (strokeWidth, strokeColor,
// shadowOffsetX, shadowOffsetY, shadowBlur, shadowColor, transformScale,
// transformRotate).
func (ti *TextInspector) Change(field string, value interface{}) error {
	var n float64
	if !stringFields[field] {
		var err error
		if n, err = toNumber(value); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrValidation, field, err)
		}
		value = n
	}

	key := field
	switch field {
	case "lineHeight":
		value = n / 10
	case "strokeWidth":
		key, value = "WebkitTextStrokeWidth", style.FormatNumber(n)+"px"
	case "strokeColor":
		key, value = "WebkitTextStrokeColor", fmt.Sprint(value)
	case "shadowOffsetX", "shadowOffsetY", "shadowBlur", "shadowColor":
		shadow := style.FirstShadow(ti.str("textShadow"))
		switch field {
		case "shadowOffsetX":
			shadow.OffsetX = int(n)
		case "shadowOffsetY":
			shadow.OffsetY = int(n)
		case "shadowBlur":
			shadow.Blur = int(n)
		case "shadowColor":
			color := fmt.Sprint(value)
			if !style.IsShadowColor(color) {
				return fmt.Errorf("%w: %s: %q is not a hex colour", domain.ErrValidation, field, color)
			}
			shadow.Color = color
		}
		key, value = "textShadow", shadow.String()
	case "transformScale":
		key, value = "transform", style.UpdateTransformFloat(ti.str("transform"), style.Scale, n/100)
	case "transformRotate":
		key, value = "transform", style.UpdateTransformFloat(ti.str("transform"), style.Rotate, n)
	case "textDecoration":
		if ti.str("textDecoration") == "underline" {
			value = "none"
		} else {
			value = "underline"
		}
	}

	return ti.edit(Details{key: value})
}

// SelectFont switches to the Regular variant of family
func (ti *TextInspector) SelectFont(family string) error {
	font, ok := ti.fonts.RegularFont(family)
	if !ok {
		return fmt.Errorf("font family %s: %w", family, domain.ErrNotFound)
	}
	return ti.setFont(font)
}

// ToggleBold flips between the bold and non-bold variant, keeping italic
func (ti *TextInspector) ToggleBold() error {
	family, variant, _ := strings.Cut(ti.str("fontFamily"), "-")
	bold := !strings.Contains(variant, "Bold")
	return ti.switchVariant(family, bold, strings.Contains(variant, "Italic"))
}

// ToggleItalic flips between the italic and upright variant, keeping bold
func (ti *TextInspector) ToggleItalic() error {
	family, variant, _ := strings.Cut(ti.str("fontFamily"), "-")
	italic := !strings.Contains(variant, "Italic")
	return ti.switchVariant(family, strings.Contains(variant, "Bold"), italic)
}

func (ti *TextInspector) switchVariant(family string, bold, italic bool) error {
	var suffix string
	switch {
	case bold && italic:
		suffix = "BoldItalic"
	case bold:
		suffix = "Bold"
	case italic:
		suffix = "Italic"
	default:
		suffix = "Regular"
	}
	name := family + "-" + suffix
	font, ok := ti.fonts.FontByPostScriptName(name)
	if !ok {
		return fmt.Errorf("font %s: %w", name, domain.ErrNotFound)
	}
	return ti.setFont(font)
}

func (ti *TextInspector) setFont(font catalog.Font) error {
	return ti.edit(Details{
		"fontFamily": font.PostScriptName,
		"fontUrl":    font.URL,
	})
}

func (ti *TextInspector) edit(details Details) error {
	if err := ti.d.Dispatch(Command{Type: EditObject, Payload: Payload{Details: details}}); err != nil {
		return err
	}
	for k, v := range details {
		ti.props[k] = v
	}
	return nil
}

func (ti *TextInspector) str(key string) string {
	switch v := ti.props[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (ti *TextInspector) num(key string) float64 {
	n, err := toNumber(ti.props[key])
	if err != nil {
		return 0
	}
	return n
}

// toNumber coerces form input: numbers pass, numeric strings are parsed,
// blank strings are zero.
func toNumber(v interface{}) (float64, error) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", t)
		}
		n = f
	default:
		return 0, fmt.Errorf("%v is not a number", v)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%v is not a finite number", v)
	}
	return n, nil
}
