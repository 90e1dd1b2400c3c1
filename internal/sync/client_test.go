package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	stdsync "sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-hrm/internal/state"
)

// fakeStore is an in-memory stand-in for the State Store server.
type fakeStore struct {
	mu  stdsync.Mutex
	doc json.RawMessage
}

func (f *fakeStore) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/data", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			f.mu.Lock()
			defer f.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			if f.doc == nil {
				w.Write([]byte(`{"data":null}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]json.RawMessage{"data": f.doc})
		case http.MethodPost:
			var body struct {
				Data json.RawMessage `json:"data"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.mu.Lock()
			f.doc = body.Data
			f.mu.Unlock()
			w.Write([]byte(`{"success":true}`))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/init", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		initialized := false
		if f.doc == nil {
			var body struct {
				Data json.RawMessage `json:"data"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			f.doc = body.Data
			initialized = true
		}
		json.NewEncoder(w).Encode(map[string]bool{"success": true, "initialized": initialized})
	})
	mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Data json.RawMessage `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.doc = body.Data
		f.mu.Unlock()
		w.Write([]byte(`{"success":true}`))
	})
	return mux
}

func seededState() *state.HRMState {
	st := state.NewState()
	st.Employees = append(st.Employees, state.Employee{
		ID:       uuid.New(),
		FullName: "Dewi",
		Email:    "dewi@example.com",
		Role:     state.RoleAdmin,
	})
	return st
}

func TestClient_PullEmptyStore(t *testing.T) {
	store := &fakeStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	st, err := client.Pull(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, st)
}

func TestClient_PushThenPull(t *testing.T) {
	store := &fakeStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()
	local := seededState()

	assert.NoError(t, client.Push(ctx, local))

	remote, err := client.Pull(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, remote)
	assert.Equal(t, local.Employees[0].ID, remote.Employees[0].ID)
}

func TestClient_InitOnlySeedsOnce(t *testing.T) {
	store := &fakeStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	initialized, err := client.Init(ctx, seededState())
	assert.NoError(t, err)
	assert.True(t, initialized)

	initialized, err = client.Init(ctx, state.NewState())
	assert.NoError(t, err)
	assert.False(t, initialized)

	remote, err := client.Pull(ctx)
	assert.NoError(t, err)
	assert.Len(t, remote.Employees, 1)
}

func TestClient_ResetOverwrites(t *testing.T) {
	store := &fakeStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	assert.NoError(t, client.Push(ctx, seededState()))
	assert.NoError(t, client.Reset(ctx, state.NewState()))

	remote, err := client.Pull(ctx)
	assert.NoError(t, err)
	assert.Empty(t, remote.Employees)
}

func TestClient_CommitHookConvergesOnNewestSnapshot(t *testing.T) {
	store := &fakeStore{}
	srv := httptest.NewServer(store.handler())
	defer srv.Close()

	client := NewClient(srv.URL)
	hook := client.CommitHook()

	// Rapid commits; the store must end up holding the last snapshot,
	// not whichever push happened to finish last.
	var last *state.HRMState
	for i := 1; i <= 20; i++ {
		st := state.NewState()
		for j := 0; j < i; j++ {
			st.Employees = append(st.Employees, state.Employee{
				ID:    uuid.New(),
				Email: fmt.Sprintf("emp%d@example.com", j),
			})
		}
		last = st
		hook(st, nil)
	}

	assert.Eventually(t, func() bool {
		remote, err := client.Pull(context.Background())
		return err == nil && remote != nil && len(remote.Employees) == len(last.Employees)
	}, 5*time.Second, 20*time.Millisecond)

	// Settles there: no stale push lands afterwards.
	time.Sleep(100 * time.Millisecond)
	remote, err := client.Pull(context.Background())
	assert.NoError(t, err)
	assert.Len(t, remote.Employees, len(last.Employees))
}

func TestClient_PullServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Pull(context.Background())
	assert.Error(t, err)
}
