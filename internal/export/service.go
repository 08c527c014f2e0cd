package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"clipdeck/internal/domain"
	"clipdeck/internal/editor"

	"github.com/google/uuid"
	mstream "github.com/haowjy/meridian-stream-go"
)

// Status of an export job
type Status string

const (
	StatusPending     Status = "pending"
	StatusRendering   Status = "rendering"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusCancelled   Status = "cancelled"
)

// Terminal reports whether the job will not change again
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Event types sent on a job's stream
const (
	EventProgress = "progress"
	EventDone     = "done"
)

// DownloadName is the file name offered to browsers
const DownloadName = "video.mp4"

// Renderer is the part of Client a job needs
type Renderer interface {
	Submit(ctx context.Context, scene *editor.SceneData) (*Render, error)
	WaitForCompletion(ctx context.Context, renderID string, onProgress func(float64)) (*Render, error)
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// Job is a point-in-time view of an export
type Job struct {
	ID        string    `json:"id"`
	SceneID   string    `json:"scene_id"`
	RenderID  string    `json:"render_id,omitempty"`
	Status    Status    `json:"status"`
	Progress  float64   `json:"progress"`
	Error     string    `json:"error,omitempty"`
	Bytes     int64     `json:"bytes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type job struct {
	Job
	path   string
	cancel context.CancelFunc
	stream *mstream.Stream
	// seq is the id of the last event describing this job
	seq int
}

// Default retention of finished jobs and their files
const (
	DefaultRetention       = time.Hour
	DefaultCleanupInterval = time.Minute
)

// Service runs exports in the background, one stream per job.
// Finished jobs and their files are dropped once older than the retention.
type Service struct {
	renderer Renderer
	registry *mstream.Registry
	dir      string
	logger   *slog.Logger

	retention       time.Duration
	cleanupInterval time.Duration

	mu   sync.Mutex
	jobs map[string]*job
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithRetention sets how long a finished job and its file are kept
func WithRetention(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.retention = d
	}
}

// WithCleanupInterval sets how often StartCleanup sweeps finished jobs
func WithCleanupInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.cleanupInterval = d
	}
}

// NewService creates an export service writing finished files into dir
func NewService(renderer Renderer, registry *mstream.Registry, dir string, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		renderer:        renderer,
		registry:        registry,
		dir:             dir,
		logger:          logger,
		retention:       DefaultRetention,
		cleanupInterval: DefaultCleanupInterval,
		jobs:            make(map[string]*job),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start snapshots the scene and begins exporting it. The returned job is pending.
func (s *Service) Start(scene editor.SceneData) (Job, error) {
	if len(scene.TrackItemIDs) == 0 {
		return Job{}, fmt.Errorf("%w: scene %s has no track items", domain.ErrValidation, scene.ID)
	}

	now := time.Now()
	j := &job{
		Job: Job{
			ID:        uuid.NewString(),
			SceneID:   scene.ID,
			Status:    StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	j.path = filepath.Join(s.dir, "clipdeck-"+j.ID+".mp4")
	j.stream = mstream.NewStream(
		j.ID,
		func(ctx context.Context, send func(mstream.Event)) error {
			return s.run(ctx, j, &scene, send)
		},
		mstream.WithCatchup(s.catchup),
	)

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	// register before starting so cancel and SSE can find the stream at once
	if err := s.registry.Register(j.stream); err != nil {
		s.mu.Lock()
		delete(s.jobs, j.ID)
		s.mu.Unlock()
		return Job{}, fmt.Errorf("register export stream %s: %w", j.ID, err)
	}
	j.stream.Start()

	s.logger.Info("export started",
		"job_id", j.ID,
		"scene_id", scene.ID,
	)
	return j.Job, nil
}

func (s *Service) run(ctx context.Context, j *job, scene *editor.SceneData, send func(mstream.Event)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if j.Status.Terminal() {
		// cancelled before the stream started
		s.mu.Unlock()
		return context.Canceled
	}
	j.cancel = cancel
	first := s.eventLocked(j, func(*Job) {})
	s.mu.Unlock()
	send(first)

	n, err := s.render(ctx, j, scene, send)
	var done mstream.Event
	switch {
	case err == nil:
		done = s.advance(j, func(job *Job) {
			job.Status = StatusCompleted
			job.Progress = 100
			job.Bytes = n
		})
		s.logger.Info("export completed", "job_id", j.ID, "bytes", n)
	case errors.Is(err, context.Canceled):
		done = s.advance(j, func(job *Job) { job.Status = StatusCancelled })
		_ = os.Remove(j.path)
		s.logger.Info("export cancelled", "job_id", j.ID)
	default:
		done = s.advance(j, func(job *Job) {
			job.Status = StatusFailed
			job.Error = err.Error()
		})
		_ = os.Remove(j.path)
		s.logger.Error("export failed", "job_id", j.ID, "error", err)
	}

	send(done)
	return err
}

func (s *Service) render(ctx context.Context, j *job, scene *editor.SceneData, send func(mstream.Event)) (int64, error) {
	r, err := s.renderer.Submit(ctx, scene)
	if err != nil {
		return 0, err
	}
	send(s.advance(j, func(job *Job) {
		job.RenderID = r.ID
		job.Status = StatusRendering
	}))

	done, err := s.renderer.WaitForCompletion(ctx, r.ID, func(p float64) {
		send(s.advance(j, func(job *Job) { job.Progress = p }))
	})
	if err != nil {
		return 0, err
	}

	url := r.URL
	if done.URL != "" {
		url = done.URL
	}
	if url == "" {
		return 0, fmt.Errorf("render %s finished without a url: %w", r.ID, domain.ErrUpstream)
	}

	send(s.advance(j, func(job *Job) { job.Status = StatusDownloading }))

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(j.path)
	if err != nil {
		return 0, fmt.Errorf("create export file: %w", err)
	}
	n, err := s.renderer.Download(ctx, url, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// catchup serves subscribers the registry's buffer cannot. A running job's
// buffer holds every event since the first one, so only a finished job
// (whose buffer was cleared) gets its final state replayed.
func (s *Service) catchup(streamID string, lastEventID string) ([]mstream.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[streamID]
	if !ok {
		return nil, fmt.Errorf("export %s: %w", streamID, domain.ErrNotFound)
	}
	if !j.Status.Terminal() || lastEventID == strconv.Itoa(j.seq) {
		return nil, nil
	}
	return []mstream.Event{jobEvent(j.Job, j.seq)}, nil
}

// Get returns the job's current state
func (s *Service) Get(id string) (Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return Job{}, fmt.Errorf("export %s: %w", id, domain.ErrNotFound)
	}
	return j.Job, nil
}

// Stream returns the job's event stream. It outlives the registry entry,
// so subscribers joining after the job finished still get its catch-up.
func (s *Service) Stream(id string) (*mstream.Stream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("export %s: %w", id, domain.ErrNotFound)
	}
	return j.stream, nil
}

// Cancel aborts a running export. Cancelling a finished job is a conflict.
func (s *Service) Cancel(id string) error {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("export %s: %w", id, domain.ErrNotFound)
	}
	if j.Status.Terminal() {
		s.mu.Unlock()
		return &domain.ConflictError{
			Message:      fmt.Sprintf("export %s already %s", id, j.Status),
			ResourceType: "export",
			ResourceID:   id,
		}
	}
	cancel := j.cancel
	if cancel == nil {
		// not started yet; run() sees the terminal status and bails out
		s.eventLocked(j, func(job *Job) { job.Status = StatusCancelled })
	}
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.stream.Cancel()
	return nil
}

// Open returns the finished file of a completed export
func (s *Service) Open(id string) (*os.File, Job, error) {
	j, err := s.Get(id)
	if err != nil {
		return nil, Job{}, err
	}
	if j.Status != StatusCompleted {
		return nil, j, &domain.ConflictError{
			Message:      fmt.Sprintf("export %s is %s", id, j.Status),
			ResourceType: "export",
			ResourceID:   id,
		}
	}

	s.mu.Lock()
	path := s.jobs[id].path
	s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, j, fmt.Errorf("open export %s: %w", id, err)
	}
	return f, j, nil
}

// Sweep drops finished jobs last updated before now minus the retention,
// deleting their files. It returns how many jobs were dropped.
func (s *Service) Sweep(now time.Time) int {
	cutoff := now.Add(-s.retention)

	s.mu.Lock()
	var expired []*job
	for id, j := range s.jobs {
		if j.Status.Terminal() && j.UpdatedAt.Before(cutoff) {
			expired = append(expired, j)
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	for _, j := range expired {
		s.registry.Remove(j.ID)
		if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove export file", "job_id", j.ID, "path", j.path, "error", err)
		}
	}
	if len(expired) > 0 {
		s.logger.Debug("swept finished exports", "count", len(expired))
	}
	return len(expired)
}

// StartCleanup sweeps finished jobs every cleanup interval until ctx is done
func (s *Service) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(now)
		}
	}
}

// advance applies fn and returns the event describing the new state
func (s *Service) advance(j *job, fn func(*Job)) mstream.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventLocked(j, fn)
}

// eventLocked mutates the job and numbers the resulting event. Caller holds s.mu.
func (s *Service) eventLocked(j *job, fn func(*Job)) mstream.Event {
	fn(&j.Job)
	j.UpdatedAt = time.Now()
	j.seq++
	return jobEvent(j.Job, j.seq)
}

// jobEvent encodes a job state. Terminal states are sent as done events.
func jobEvent(j Job, seq int) mstream.Event {
	eventType := EventProgress
	if j.Status.Terminal() {
		eventType = EventDone
	}
	// Job has no unmarshalable fields
	data, _ := json.Marshal(j)
	return mstream.NewEvent(data).WithID(strconv.Itoa(seq)).WithType(eventType)
}
