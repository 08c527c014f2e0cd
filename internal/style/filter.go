package style

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	saturateRe   = regexp.MustCompile(`saturate\((\d+)%\)`)
	brightnessRe = regexp.MustCompile(`brightness\((\d+)%\)`)
	contrastRe   = regexp.MustCompile(`contrast\((\d+)%\)`)
	hueRotateRe  = regexp.MustCompile(`hue-rotate\((\d+)deg\)`)
)

// Filters holds the image/video filter components the inspector exposes
type Filters struct {
	Saturate   int `json:"saturate"`
	Brightness int `json:"brightness"`
	Contrast   int `json:"contrast"`
	HueRotate  int `json:"hueRotate"`
}

// ParseFilters extracts the filter components from a CSS filter string.
// Missing components take their neutral value: 100% for saturate,
// brightness and contrast, 0deg for hue-rotate.
func ParseFilters(s string) Filters {
	return Filters{
		Saturate:   firstInt(saturateRe, s, 100),
		Brightness: firstInt(brightnessRe, s, 100),
		Contrast:   firstInt(contrastRe, s, 100),
		HueRotate:  firstInt(hueRotateRe, s, 0),
	}
}

// String serialises the filters in a fixed order
func (f Filters) String() string {
	return fmt.Sprintf("saturate(%d%%) brightness(%d%%) contrast(%d%%) hue-rotate(%ddeg)",
		f.Saturate, f.Brightness, f.Contrast, f.HueRotate)
}

func firstInt(re *regexp.Regexp, s string, fallback int) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return fallback
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	return n
}
