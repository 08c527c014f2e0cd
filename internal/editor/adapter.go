package editor

import (
	"clipdeck/internal/catalog"

	"github.com/google/uuid"
)

// DefaultText is the text of a freshly added text item
const DefaultText = "Heading"

// Adapter turns menu actions into engine commands.
type Adapter struct {
	d Dispatcher
}

// NewAdapter wraps a dispatcher
func NewAdapter(d Dispatcher) *Adapter {
	return &Adapter{d: d}
}

// AddText adds a text item in the given font. An empty text becomes DefaultText.
func (a *Adapter) AddText(font catalog.Font, text string) (string, error) {
	if text == "" {
		text = DefaultText
	}
	id := uuid.NewString()
	return id, a.d.Dispatch(Command{
		Type: AddText,
		Payload: Payload{
			ID: id,
			Details: Details{
				"text":       text,
				"fontSize":   128,
				"fontUrl":    font.URL,
				"fontFamily": font.PostScriptName,
				"color":      "#ffffff",
				"wordWrap":   "break-word",
				"wordBreak":  "break-all",
			},
		},
	})
}

// AddImage adds an image item
func (a *Adapter) AddImage(src string) (string, error) {
	return a.addMedia(AddImage, src, nil)
}

// AddAudio adds an audio item
func (a *Adapter) AddAudio(src string) (string, error) {
	return a.addMedia(AddAudio, src, nil)
}

// AddVideo adds a video item; resourceID identifies the stock clip
func (a *Adapter) AddVideo(src, resourceID string) (string, error) {
	return a.addMedia(AddVideo, src, map[string]interface{}{"resourceId": resourceID})
}

func (a *Adapter) addMedia(cmdType, src string, metadata map[string]interface{}) (string, error) {
	id := uuid.NewString()
	return id, a.d.Dispatch(Command{
		Type: cmdType,
		Payload: Payload{
			ID:       id,
			Details:  Details{"src": src},
			Metadata: metadata,
		},
	})
}

// Resize sets the canvas to a preset
func (a *Adapter) Resize(p catalog.Preset) error {
	return a.d.Dispatch(Command{
		Type: DesignResize,
		Payload: Payload{
			Width:  p.Width,
			Height: p.Height,
			Name:   p.Name,
		},
	})
}
