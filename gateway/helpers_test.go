package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"equipment_borrow/identity"
	"equipment_borrow/session"
)

type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	FromMobile  string
	Body        map[string]any
}

// fakeBackend 记录每次请求，按路径返回预设响应
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]http.HandlerFunc
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	fb := &fakeBackend{handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (f *fakeBackend) on(path string, h http.HandlerFunc) { f.handlers[path] = h }

func (f *fakeBackend) onJSON(path string, status int, payload any) {
	f.on(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	})
}

func (f *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	rec := recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		FromMobile:  r.Header.Get("X-From-Mobile"),
	}
	if len(b) > 0 {
		_ = json.Unmarshal(b, &rec.Body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, rec)
	h := f.handlers[r.URL.Path]
	f.mu.Unlock()
	if h == nil {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

func (f *fakeBackend) calls(path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedRequest
	for _, r := range f.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type fakeProvider struct {
	mu        sync.Mutex
	email     string
	token     string
	signOuts  int
	signOutFn func() error
}

func (p *fakeProvider) SignIn(ctx context.Context) (identity.Identity, error) {
	return identity.Identity{IDToken: p.token, Email: p.email}, nil
}

func (p *fakeProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.signOuts++
	fn := p.signOutFn
	p.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return nil
}

func (p *fakeProvider) CurrentUser(ctx context.Context) (*identity.Identity, error) { return nil, nil }

func (p *fakeProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signOuts
}

type fakeAuth struct {
	mu       sync.Mutex
	signOuts int
	err      error
}

func (a *fakeAuth) SignInWithToken(ctx context.Context, idToken string) (identity.Credential, error) {
	if a.err != nil {
		return identity.Credential{}, a.err
	}
	return identity.Credential{Email: "a@tdmu.edu.vn"}, nil
}

func (a *fakeAuth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.signOuts++
	return nil
}

func (a *fakeAuth) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signOuts
}

type alert struct{ Title, Message string }

type fakeNotifier struct {
	mu       sync.Mutex
	confirm  func(ctx context.Context) bool
	alerts   []alert
	confirms int
}

func (n *fakeNotifier) Confirm(ctx context.Context, title, message string) bool {
	n.mu.Lock()
	n.confirms++
	fn := n.confirm
	n.mu.Unlock()
	if fn == nil {
		return true
	}
	return fn(ctx)
}

func (n *fakeNotifier) Alert(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert{title, message})
}

func (n *fakeNotifier) lastAlert() (alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.alerts) == 0 {
		return alert{}, false
	}
	return n.alerts[len(n.alerts)-1], true
}

type failingStore struct{ session.MemoryStore }

func (f *failingStore) Clear(ctx context.Context) error {
	_ = f.MemoryStore.Clear(ctx)
	return errors.New("disk full")
}

type harness struct {
	backend  *fakeBackend
	server   *httptest.Server
	client   *Client
	provider *fakeProvider
	auth     *fakeAuth
	store    *session.MemoryStore
	notify   *fakeNotifier
	gw       *SessionGateway
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fb, srv := newFakeBackend(t)
	h := &harness{
		backend:  fb,
		server:   srv,
		client:   New(srv.URL+"/api/v1", WithHTTPClient(srv.Client())),
		provider: &fakeProvider{email: "a@tdmu.edu.vn", token: "tok"},
		auth:     &fakeAuth{},
		store:    session.NewMemoryStore(),
		notify:   &fakeNotifier{},
	}
	h.gw = NewSessionGateway(h.client, h.provider, h.auth, h.store, h.notify)
	return h
}
