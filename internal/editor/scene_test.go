package editor

import (
	"encoding/json"
	"testing"

	"clipdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneAddSelectsItem(t *testing.T) {
	s := NewScene("proj-1", Size{Width: 1920, Height: 1080})

	require.NoError(t, s.Dispatch(Command{Type: AddImage, Payload: Payload{ID: "img", Details: Details{"src": "a.png"}}}))
	require.NoError(t, s.Dispatch(Command{Type: AddText, Payload: Payload{ID: "txt", Details: Details{"text": "Hi"}}}))

	assert.Equal(t, []string{"txt"}, s.ActiveIDs())

	snap := s.Snapshot()
	assert.Equal(t, []string{"img", "txt"}, snap.TrackItemIDs)
	assert.Equal(t, ItemImage, snap.TrackItemsMap["img"].Type)
	assert.Equal(t, int64(DefaultItemDuration), snap.Duration)
	assert.Equal(t, DefaultFPS, snap.FPS)
}

func TestSceneRejects(t *testing.T) {
	s := NewScene("p", Size{Width: 100, Height: 100})

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"image without src", Command{Type: AddImage, Payload: Payload{ID: "x"}}, domain.ErrValidation},
		{"edit with no selection", Command{Type: EditObject, Payload: Payload{Details: Details{"color": "#000"}}}, domain.ErrValidation},
		{"zero resize", Command{Type: DesignResize, Payload: Payload{Width: 0, Height: 10}}, domain.ErrValidation},
		{"unknown command", Command{Type: "LAYER_DELETE"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Dispatch(tt.cmd), tt.want)
		})
	}

	require.NoError(t, s.Dispatch(Command{Type: AddAudio, Payload: Payload{ID: "a", Details: Details{"src": "a.mp3"}}}))
	err := s.Dispatch(Command{Type: AddAudio, Payload: Payload{ID: "a", Details: Details{"src": "b.mp3"}}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSceneEditMergesIntoSelection(t *testing.T) {
	s := NewScene("p", Size{Width: 100, Height: 100})
	require.NoError(t, s.Dispatch(Command{Type: AddText, Payload: Payload{ID: "a", Details: Details{"text": "A", "color": "#fff"}}}))
	require.NoError(t, s.Dispatch(Command{Type: AddText, Payload: Payload{ID: "b", Details: Details{"text": "B"}}}))
	require.NoError(t, s.Select("a", "b"))

	require.NoError(t, s.Dispatch(Command{Type: EditObject, Payload: Payload{Details: Details{"color": "#000"}}}))

	snap := s.Snapshot()
	assert.Equal(t, "#000", snap.TrackItemsMap["a"].Details["color"])
	assert.Equal(t, "A", snap.TrackItemsMap["a"].Details["text"])
	assert.Equal(t, "#000", snap.TrackItemsMap["b"].Details["color"])

	assert.ErrorIs(t, s.Select("missing"), domain.ErrNotFound)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewScene("p", Size{Width: 100, Height: 100})
	require.NoError(t, s.Dispatch(Command{Type: AddText, Payload: Payload{ID: "a", Details: Details{"text": "A"}}}))

	snap := s.Snapshot()
	snap.TrackItemsMap["a"].Details["text"] = "mutated"

	item, ok := s.ActiveItem()
	require.True(t, ok)
	assert.Equal(t, "A", item.Details["text"])
}

func TestSceneJSONShape(t *testing.T) {
	s := NewScene("proj", Size{Width: 1080, Height: 1920})
	raw, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "projectId", "size", "fps", "duration", "trackItemIds", "trackItemsMap", "transitionIds", "transitionsMap"} {
		assert.Contains(t, m, key)
	}
}

func TestLoadScene(t *testing.T) {
	_, err := LoadScene(SceneData{Size: Size{Width: 0, Height: 10}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = LoadScene(SceneData{Size: Size{Width: 10, Height: 10}, TrackItemIDs: []string{"ghost"}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	s, err := LoadScene(SceneData{
		ID:           "scene-1",
		Size:         Size{Width: 10, Height: 10},
		TrackItemIDs: []string{"a"},
		TrackItemsMap: map[string]TrackItem{
			"a": {ID: "a", Type: ItemVideo, Display: Display{From: 0, To: 9000}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "scene-1", s.ID())
	snap := s.Snapshot()
	assert.Equal(t, int64(9000), snap.Duration)
	assert.Equal(t, DefaultFPS, snap.FPS)
}

func TestStore(t *testing.T) {
	st := NewStore()
	s := st.Create("p", Size{Width: 1, Height: 1})

	got, err := st.Get(s.ID())
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, []string{s.ID()}, st.IDs())

	require.NoError(t, st.Delete(s.ID()))
	_, err = st.Get(s.ID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, st.Delete(s.ID()), domain.ErrNotFound)
}
