package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"clipdeck/internal/domain"
	"clipdeck/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRenderService serves the render API, reaching 100% after `steps` polls
func fakeRenderService(t *testing.T, steps int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var polls atomic.Int32
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("POST /{$}", func(w http.ResponseWriter, r *http.Request) {
		var scene editor.SceneData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&scene))
		assert.NotEmpty(t, scene.TrackItemIDs)
		w.Write([]byte(`{"render":{"id":"r-1","url":"` + srv.URL + `/files/r-1.mp4"}}`))
	})
	mux.HandleFunc("GET /r-1/status", func(w http.ResponseWriter, r *http.Request) {
		n := polls.Add(1)
		progress := int32(100)
		if n < steps {
			progress = n * 100 / steps
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"render": map[string]interface{}{"progress": progress}})
	})
	mux.HandleFunc("GET /files/r-1.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("MP4DATA"))
	})

	srv = httptest.NewServer(mux)
	return srv, &polls
}

func sampleScene() *editor.SceneData {
	s := editor.NewScene("proj", editor.Size{Width: 1920, Height: 1080})
	_ = s.Dispatch(editor.Command{Type: editor.AddText, Payload: editor.Payload{ID: "t", Details: editor.Details{"text": "Hi"}}})
	data := s.Snapshot()
	return &data
}

func TestExportFlow(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, polls := fakeRenderService(t, 3)
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithHTTPClient(srv.Client()), WithPollInterval(time.Millisecond))

	var seen []float64
	var buf bytes.Buffer
	n, err := c.Export(context.Background(), sampleScene(), &buf, func(p float64) { seen = append(seen, p) })
	require.NoError(t, err)

	assert.Equal(t, int64(7), n)
	assert.Equal(t, "MP4DATA", buf.String())
	assert.Equal(t, int32(3), polls.Load())
	assert.Equal(t, []float64{33, 66, 100}, seen)
}

func TestWaitForCompletionHonoursCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, _ := fakeRenderService(t, 1_000_000)
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithHTTPClient(srv.Client()), WithPollInterval(5*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.WaitForCompletion(ctx, "r-1", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForCompletionTimeout(t *testing.T) {
	srv, _ := fakeRenderService(t, 1_000_000)
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(),
		WithHTTPClient(srv.Client()),
		WithPollInterval(2*time.Millisecond),
		WithTimeout(20*time.Millisecond),
	)

	_, err := c.WaitForCompletion(context.Background(), "r-1", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStatusErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithHTTPClient(srv.Client()))
	_, err := c.WaitForCompletion(context.Background(), "r-1", nil)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = c.Submit(context.Background(), sampleScene())
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestTransportErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := NewClient(srv.URL, testLogger(), WithHTTPClient(srv.Client()))
	srv.Close()

	_, err := c.Status(context.Background(), "r-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)

	_, err = c.Submit(context.Background(), sampleScene())
	assert.ErrorIs(t, err, domain.ErrUpstream)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Submit(ctx, sampleScene())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDownloadOutlivesClientTimeout(t *testing.T) {
	slow := func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("MP4DATA"))
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/slow.mp4", slow)
	mux.HandleFunc("GET /r-1/status", slow)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	hc := srv.Client()
	hc.Timeout = 50 * time.Millisecond
	c := NewClient(srv.URL, testLogger(), WithHTTPClient(hc))

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), srv.URL+"/files/slow.mp4", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, "MP4DATA", buf.String())

	// API calls keep the overall timeout
	_, err = c.Status(context.Background(), "r-1")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDownloadHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testLogger(), WithHTTPClient(srv.Client()))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Download(ctx, srv.URL+"/video.mp4", io.Discard)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
