// Package sync talks to the remote State Store and keeps the local
// aggregate in step with it. The store holds the whole document under a
// single key; there are no partial updates on the wire.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	stdsync "sync"
	"time"

	"go.uber.org/zap"

	"go-hrm/internal/state"
)

// DefaultStoreKey is the logical document key mirrored by local caches.
const DefaultStoreKey = "hrm-state"

const defaultRequestTimeout = 5 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	pushOnce stdsync.Once
	pushCh   chan *state.HRMState
}

func NewClient(baseURL string, logger ...*zap.Logger) *Client {
	l := zap.L().Named("sync.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sync.client")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultRequestTimeout},
		logger:  l,
	}
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type pushResult struct {
	Success bool `json:"success"`
}

type initResult struct {
	Success     bool `json:"success"`
	Initialized bool `json:"initialized"`
}

// Pull fetches the remote document. A store that holds no document yet
// answers with a null data field; that comes back as (nil, nil).
func (c *Client) Pull(ctx context.Context) (*state.HRMState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store pull: unexpected status %d", res.StatusCode)
	}

	var env dataEnvelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return nil, nil
	}
	return state.Decode(env.Data)
}

// Push writes the full document. Callers treat failures as advisory;
// local state stays authoritative until the next successful sync.
func (c *Client) Push(ctx context.Context, st *state.HRMState) error {
	res, err := c.postState(ctx, "/data", st)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var out pushResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("store push: rejected")
	}
	return nil
}

// Init seeds the store with st only when no document exists yet.
// Returns true when this call actually wrote the seed.
func (c *Client) Init(ctx context.Context, st *state.HRMState) (bool, error) {
	res, err := c.postState(ctx, "/init", st)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	var out initResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return false, err
	}
	if !out.Success {
		return false, fmt.Errorf("store init: rejected")
	}
	return out.Initialized, nil
}

// Reset overwrites the store document unconditionally.
func (c *Client) Reset(ctx context.Context, st *state.HRMState) error {
	res, err := c.postState(ctx, "/reset", st)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var out pushResult
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("store reset: rejected")
	}
	return nil
}

func (c *Client) postState(ctx context.Context, path string, st *state.HRMState) (*http.Response, error) {
	raw, err := st.Encode()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(dataEnvelope{Data: raw})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("store %s: unexpected status %d", path, res.StatusCode)
	}
	return res, nil
}

// CommitHook returns an engine hook that mirrors every committed state
// to the store. Failures are logged and never roll back the commit.
// Pushes go through one worker so a slow request cannot overtake a
// newer snapshot; a pending snapshot is dropped when a newer one lands.
func (c *Client) CommitHook() state.CommitHook {
	c.pushOnce.Do(func() {
		c.pushCh = make(chan *state.HRMState, 1)
		go c.pushLoop()
	})
	return func(snapshot *state.HRMState, _ *state.AuditLogEntry) {
		for {
			select {
			case c.pushCh <- snapshot:
				return
			default:
			}
			select {
			case <-c.pushCh:
			default:
			}
		}
	}
}

func (c *Client) pushLoop() {
	for snapshot := range c.pushCh {
		ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
		if err := c.Push(ctx, snapshot); err != nil {
			c.logger.Warn("store push failed, keeping local state", zap.Error(err))
		}
		cancel()
	}
}
