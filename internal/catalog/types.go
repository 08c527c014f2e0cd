package catalog

// Preset is a canvas size offered by the resize menu
type Preset struct {
	Name   string `yaml:"name" json:"name"`
	Label  string `yaml:"label" json:"label"`
	Icon   string `yaml:"icon" json:"icon"`
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
}

// Font is one variant of a font family
type Font struct {
	Family         string `yaml:"family" json:"family"`
	FullName       string `yaml:"full_name" json:"fullName"`
	PostScriptName string `yaml:"post_script_name" json:"postScriptName"`
	URL            string `yaml:"url" json:"url"`
	Preview        string `yaml:"preview" json:"preview"`
}

// StockVideo is a video clip that can be dropped on the timeline
type StockVideo struct {
	Src        string `yaml:"src" json:"src"`
	ResourceID string `yaml:"resource_id" json:"resourceId"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

type fontFile struct {
	Default string `yaml:"default"`
	Fonts   []Font `yaml:"fonts"`
}

type videoFile struct {
	Videos []StockVideo `yaml:"videos"`
}
