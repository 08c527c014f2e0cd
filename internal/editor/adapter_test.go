package editor

import (
	"testing"

	"clipdeck/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures dispatched commands
type recorder struct {
	cmds []Command
}

func (r *recorder) Dispatch(cmd Command) error {
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) last() Command {
	return r.cmds[len(r.cmds)-1]
}

func TestAdapterAddText(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)
	font := catalog.Font{PostScriptName: "Roboto-Bold", URL: "fonts/roboto/Roboto-Bold.ttf"}

	id, err := a.AddText(font, "")
	require.NoError(t, err)

	cmd := rec.last()
	assert.Equal(t, AddText, cmd.Type)
	assert.Equal(t, id, cmd.Payload.ID)
	assert.Equal(t, Details{
		"text":       "Heading",
		"fontSize":   128,
		"fontUrl":    "fonts/roboto/Roboto-Bold.ttf",
		"fontFamily": "Roboto-Bold",
		"color":      "#ffffff",
		"wordWrap":   "break-word",
		"wordBreak":  "break-all",
	}, cmd.Payload.Details)
}

func TestAdapterMedia(t *testing.T) {
	rec := &recorder{}
	a := NewAdapter(rec)

	_, err := a.AddVideo("https://cdn/v.mp4", "res-1")
	require.NoError(t, err)
	cmd := rec.last()
	assert.Equal(t, AddVideo, cmd.Type)
	assert.Equal(t, "https://cdn/v.mp4", cmd.Payload.Details["src"])
	assert.Equal(t, "res-1", cmd.Payload.Metadata["resourceId"])

	_, err = a.AddAudio("https://cdn/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, AddAudio, rec.last().Type)
	assert.Nil(t, rec.last().Payload.Metadata)

	_, err = a.AddImage("https://cdn/i.png")
	require.NoError(t, err)
	assert.Equal(t, AddImage, rec.last().Type)
}

func TestAdapterResize(t *testing.T) {
	s := NewScene("p", Size{Width: 1920, Height: 1080})
	a := NewAdapter(s)

	require.NoError(t, a.Resize(catalog.Preset{Name: "9:16", Width: 1080, Height: 1920}))
	assert.Equal(t, Size{Width: 1080, Height: 1920}, s.Snapshot().Size)
}
