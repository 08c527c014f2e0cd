package editor

// Command names understood by the scene engine
const (
	AddText      = "ADD_TEXT"
	AddImage     = "ADD_IMAGE"
	AddAudio     = "ADD_AUDIO"
	AddVideo     = "ADD_VIDEO"
	EditObject   = "EDIT_OBJECT"
	DesignResize = "DESIGN_RESIZE"
)

// Details is the free-form property bag of a track item
type Details map[string]interface{}

// Clone returns a shallow copy
func (d Details) Clone() Details {
	out := make(Details, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Command is one mutation sent to the engine
type Command struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Payload carries the fields of every command type. ADD_* use ID, Details
// and Metadata; EDIT_OBJECT uses Details; DESIGN_RESIZE uses Width, Height
// and Name.
type Payload struct {
	ID       string                 `json:"id,omitempty"`
	Details  Details                `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Width    int                    `json:"width,omitempty"`
	Height   int                    `json:"height,omitempty"`
	Name     string                 `json:"name,omitempty"`
}

// Dispatcher is the engine's command bus. Dispatch is fire-and-forget from
// the caller's point of view; the error only reports malformed commands.
type Dispatcher interface {
	Dispatch(cmd Command) error
}
