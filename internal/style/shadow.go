package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	shadowRe   = regexp.MustCompile(`(-?\d+)px (-?\d+)px (\d+)px (#[0-9a-fA-F]{3,6})`)
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{3,6}$`)
)

// IsShadowColor reports whether c is a colour ParseShadow can read back
func IsShadowColor(c string) bool {
	return hexColorRe.MatchString(c)
}

// Shadow is a single text-shadow: "<x>px <y>px <blur>px <hex color>"
type Shadow struct {
	OffsetX int    `json:"offsetX"`
	OffsetY int    `json:"offsetY"`
	Blur    int    `json:"blur"`
	Color   string `json:"color"`
}

// DefaultShadow is the shadow of a freshly added text item
var DefaultShadow = Shadow{Color: "#ffffff"}

// ParseShadow matches the first shadow in s. ok is false when s does not
// contain the four-field pattern; callers must check it.
func ParseShadow(s string) (shadow Shadow, ok bool) {
	m := shadowRe.FindStringSubmatch(s)
	if m == nil {
		return Shadow{}, false
	}
	// the pattern bounds each group to digits, Atoi only fails on overflow
	x, errX := strconv.Atoi(m[1])
	y, errY := strconv.Atoi(m[2])
	b, errB := strconv.Atoi(m[3])
	if errX != nil || errY != nil || errB != nil {
		return Shadow{}, false
	}
	return Shadow{OffsetX: x, OffsetY: y, Blur: b, Color: m[4]}, true
}

// FirstShadow parses the first entry of a comma-separated shadow list.
// "none" and unparsable input fall back to DefaultShadow.
func FirstShadow(list string) Shadow {
	if list == "" || list == "none" {
		return DefaultShadow
	}
	first, _, _ := strings.Cut(list, ", ")
	if s, ok := ParseShadow(first); ok {
		return s
	}
	return DefaultShadow
}

// String serialises the shadow in the form ParseShadow accepts
func (s Shadow) String() string {
	return fmt.Sprintf("%dpx %dpx %dpx %s", s.OffsetX, s.OffsetY, s.Blur, s.Color)
}
