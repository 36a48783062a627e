package services

import (
	"context"
	"encoding/json"
	"sync"
)

// fakeClient implements client.Client for service tests. Responses and
// errors are keyed by "METHOD path".
type fakeClient struct {
	mu        sync.Mutex
	calls     []string
	bodies    map[string]any
	responses map[string]any
	errs      map[string]error
	block     chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		bodies:    make(map[string]any),
		responses: make(map[string]any),
		errs:      make(map[string]error),
	}
}

func (f *fakeClient) Do(ctx context.Context, method, path string, body, out any) error {
	key := method + " " + path

	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.bodies[key] = body
	resp, hasResp := f.responses[key]
	err := f.errs[key]
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return err
	}
	if hasResp && out != nil {
		b, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, out)
	}
	return nil
}

func (f *fakeClient) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (f *fakeClient) SetAuthorization(string)                                   {}
func (f *fakeClient) ClearAuthorization()                                       {}
func (f *fakeClient) Authorization() string                                     { return "" }
func (f *fakeClient) OnSessionExpired(func(ctx context.Context, cause error))   {}
func (f *fakeClient) OnTokenRefreshed(func(ctx context.Context, access string)) {}
