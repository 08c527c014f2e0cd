package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser(t *testing.T) {
	var created bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service", r.Header.Get("Authorization"))
		if created {
			w.Write([]byte(`{"users":[{"id":"new-id","email":"admin@test.com"}]}`))
			return
		}
		w.Write([]byte(`{"users":[{"id":"other","email":"someone@else.com"}]}`))
	})
	mux.HandleFunc("POST /auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		created = true
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"new-id","email":"admin@test.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewAdminClient(srv.URL, "service")
	ctx := context.Background()

	id, wasCreated, err := c.EnsureUser(ctx, "admin@test.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.True(t, wasCreated)

	id, wasCreated, err = c.EnsureUser(ctx, "ADMIN@test.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	assert.False(t, wasCreated)
}

func TestDeleteUserByEmailMissingIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected %s", r.Method)
		}
		w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewAdminClient(srv.URL, "service").DeleteUserByEmail(context.Background(), "ghost@test.com"))
}
