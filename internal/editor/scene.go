package editor

import (
	"encoding/json"
	"fmt"
	"sync"

	"clipdeck/internal/domain"

	"github.com/google/uuid"
)

// Scene defaults
const (
	DefaultFPS          = 30
	DefaultItemDuration = 5000 // ms
)

// Item types
const (
	ItemText  = "text"
	ItemImage = "image"
	ItemAudio = "audio"
	ItemVideo = "video"
)

var itemTypes = map[string]string{
	AddText:  ItemText,
	AddImage: ItemImage,
	AddAudio: ItemAudio,
	AddVideo: ItemVideo,
}

// Size is the canvas size in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Display is an item's time span on the timeline in milliseconds
type Display struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// TrackItem is one element on the timeline
type TrackItem struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"type"`
	Name     string                 `json:"name,omitempty"`
	Display  Display                `json:"display"`
	Details  Details                `json:"details"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SceneData is the serialised scene, the payload the render service accepts
type SceneData struct {
	ID             string                     `json:"id"`
	ProjectID      string                     `json:"projectId"`
	Size           Size                       `json:"size"`
	FPS            int                        `json:"fps"`
	Duration       int64                      `json:"duration"`
	TrackItemIDs   []string                   `json:"trackItemIds"`
	TrackItemsMap  map[string]TrackItem       `json:"trackItemsMap"`
	TransitionIDs  []string                   `json:"transitionIds"`
	TransitionsMap map[string]json.RawMessage `json:"transitionsMap"`
}

// Scene is an in-memory stand-in for the editor engine. It applies commands
// to its track items and keeps the active selection.
type Scene struct {
	mu        sync.RWMutex
	data      SceneData
	activeIDs []string
}

// NewScene creates an empty scene of the given size
func NewScene(projectID string, size Size) *Scene {
	return &Scene{
		data: SceneData{
			ID:             uuid.NewString(),
			ProjectID:      projectID,
			Size:           size,
			FPS:            DefaultFPS,
			TrackItemIDs:   []string{},
			TrackItemsMap:  map[string]TrackItem{},
			TransitionIDs:  []string{},
			TransitionsMap: map[string]json.RawMessage{},
		},
	}
}

// LoadScene rebuilds a scene from serialised data. Missing maps are
// initialised and the duration is recomputed from the items.
func LoadScene(data SceneData) (*Scene, error) {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}
	if data.Size.Width <= 0 || data.Size.Height <= 0 {
		return nil, fmt.Errorf("%w: scene size must be positive", domain.ErrValidation)
	}
	if data.FPS <= 0 {
		data.FPS = DefaultFPS
	}
	if data.TrackItemsMap == nil {
		data.TrackItemsMap = map[string]TrackItem{}
	}
	if data.TransitionsMap == nil {
		data.TransitionsMap = map[string]json.RawMessage{}
	}
	if data.TransitionIDs == nil {
		data.TransitionIDs = []string{}
	}
	ids := make([]string, 0, len(data.TrackItemIDs))
	for _, id := range data.TrackItemIDs {
		if _, ok := data.TrackItemsMap[id]; !ok {
			return nil, fmt.Errorf("%w: track item %s listed but not defined", domain.ErrValidation, id)
		}
		ids = append(ids, id)
	}
	data.TrackItemIDs = ids

	s := &Scene{data: data}
	s.recomputeDuration()
	return s, nil
}

// ID returns the scene ID
func (s *Scene) ID() string {
	return s.data.ID
}

// Dispatch applies a command to the scene
func (s *Scene) Dispatch(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Type {
	case AddText, AddImage, AddAudio, AddVideo:
		return s.addItem(itemTypes[cmd.Type], cmd.Payload)
	case EditObject:
		return s.editActive(cmd.Payload.Details)
	case DesignResize:
		if cmd.Payload.Width <= 0 || cmd.Payload.Height <= 0 {
			return fmt.Errorf("%w: resize to %dx%d", domain.ErrValidation, cmd.Payload.Width, cmd.Payload.Height)
		}
		s.data.Size = Size{Width: cmd.Payload.Width, Height: cmd.Payload.Height}
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", domain.ErrValidation, cmd.Type)
	}
}

func (s *Scene) addItem(itemType string, p Payload) error {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, exists := s.data.TrackItemsMap[id]; exists {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("track item %s already exists", id),
			ResourceType: "track_item",
			ResourceID:   id,
		}
	}

	details := p.Details.Clone()
	if itemType != ItemText {
		if src, _ := details["src"].(string); src == "" {
			return fmt.Errorf("%w: %s item needs a src", domain.ErrValidation, itemType)
		}
	}

	s.data.TrackItemsMap[id] = TrackItem{
		ID:       id,
		Type:     itemType,
		Display:  Display{From: 0, To: DefaultItemDuration},
		Details:  details,
		Metadata: p.Metadata,
	}
	s.data.TrackItemIDs = append(s.data.TrackItemIDs, id)
	s.activeIDs = []string{id}
	s.recomputeDuration()
	return nil
}

// editActive merges details into every selected item. Last write wins.
func (s *Scene) editActive(details Details) error {
	if len(s.activeIDs) == 0 {
		return fmt.Errorf("%w: no active item to edit", domain.ErrValidation)
	}
	for _, id := range s.activeIDs {
		item := s.data.TrackItemsMap[id]
		merged := item.Details.Clone()
		for k, v := range details {
			merged[k] = v
		}
		item.Details = merged
		s.data.TrackItemsMap[id] = item
	}
	return nil
}

func (s *Scene) recomputeDuration() {
	var end int64
	for _, item := range s.data.TrackItemsMap {
		if item.Display.To > end {
			end = item.Display.To
		}
	}
	s.data.Duration = end
}

// Select replaces the active selection. Unknown IDs are rejected.
func (s *Scene) Select(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, ok := s.data.TrackItemsMap[id]; !ok {
			return fmt.Errorf("track item %s: %w", id, domain.ErrNotFound)
		}
	}
	s.activeIDs = append([]string(nil), ids...)
	return nil
}

// ActiveIDs returns the current selection
func (s *Scene) ActiveIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.activeIDs...)
}

// ActiveItem returns a copy of the first selected item
func (s *Scene) ActiveItem() (TrackItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.activeIDs) == 0 {
		return TrackItem{}, false
	}
	item, ok := s.data.TrackItemsMap[s.activeIDs[0]]
	if !ok {
		return TrackItem{}, false
	}
	item.Details = item.Details.Clone()
	return item, true
}

// Snapshot returns a deep enough copy of the scene to serialise or export
func (s *Scene) Snapshot() SceneData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.data
	out.TrackItemIDs = append([]string{}, s.data.TrackItemIDs...)
	out.TransitionIDs = append([]string{}, s.data.TransitionIDs...)
	out.TrackItemsMap = make(map[string]TrackItem, len(s.data.TrackItemsMap))
	for id, item := range s.data.TrackItemsMap {
		item.Details = item.Details.Clone()
		out.TrackItemsMap[id] = item
	}
	out.TransitionsMap = make(map[string]json.RawMessage, len(s.data.TransitionsMap))
	for id, t := range s.data.TransitionsMap {
		out.TransitionsMap[id] = t
	}
	return out
}
