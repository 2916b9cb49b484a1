package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"equipment_borrow/api"
	"equipment_borrow/models"
	"equipment_borrow/session"
)

func init() { gin.SetMode(gin.TestMode) }

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

type fakeUsers struct {
	byID    map[string]*models.User
	touched []string
}

func (f *fakeUsers) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeUsers) TouchUserSeen(ctx context.Context, userID string) error {
	f.touched = append(f.touched, userID)
	return nil
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WEB_ORIGINS", " https://muon.tdmu.edu.vn , http://localhost:3000 ,")
	t.Setenv("SESSION_TTL_SECONDS", "abc")
	t.Setenv("LAST_SEEN_THROTTLE_SECONDS", "60")
	t.Setenv("BOOTSTRAP_MODERATOR_EMAIL", " Duyet@TDMU.edu.vn ")

	cfg := LoadConfig()
	if cfg.Port != "3001" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if len(cfg.WebOrigins) != 2 || cfg.WebOrigins[0] != "https://muon.tdmu.edu.vn" {
		t.Fatalf("unexpected origins: %v", cfg.WebOrigins)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.SeenEvery != time.Minute {
		t.Fatalf("unexpected durations: ttl=%s seen=%s", cfg.SessionTTL, cfg.SeenEvery)
	}
	if cfg.BootstrapModeratorEmail != "duyet@tdmu.edu.vn" {
		t.Fatalf("unexpected moderator email: %q", cfg.BootstrapModeratorEmail)
	}
	if !cfg.SecureCookie() {
		t.Fatal("https origin should enable secure cookie")
	}
}

func TestAuthRequiredDropsSessionOfDeletedUser(t *testing.T) {
	rdb, _ := newRedis(t)
	sessions := session.NewAppSessionStore(rdb, time.Hour)
	ctx := context.Background()
	if err := sessions.Create(ctx, "sess-1", "gone", "x@tdmu.edu.vn", 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	r := gin.New()
	r.GET("/p", AuthRequired(sessions, &fakeUsers{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.AddCookie(&http.Cookie{Name: AppSessionCookie, Value: "sess-1"})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if _, err := sessions.Get(ctx, "sess-1"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("session should be removed, got %v", err)
	}
}

func TestTouchLastSeenThrottles(t *testing.T) {
	rdb, mr := newRedis(t)
	users := &fakeUsers{}

	r := gin.New()
	r.GET("/p", func(c *gin.Context) { c.Set("userID", "u-1") },
		TouchLastSeen(users, rdb, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func() {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/p", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}
	hit()
	hit()
	if len(users.touched) != 1 {
		t.Fatalf("expected one touch inside window, got %d", len(users.touched))
	}

	mr.FastForward(2 * time.Minute)
	hit()
	if len(users.touched) != 2 {
		t.Fatalf("expected touch after window, got %d", len(users.touched))
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	resp := httptest.NewRecorder()
	before := requestsTotal.Value()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get(RequestIDHeader); got != "rid-1" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	if requestsTotal.Value() != before+1 {
		t.Fatal("requests_total not incremented")
	}
}

type fakeBootstrap struct {
	users  map[string]*models.User
	seeded bool
}

func (f *fakeBootstrap) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeBootstrap) EnsureUser(ctx context.Context, email, displayName string, roleID int) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		u = &models.User{ID: "new-id", Email: email}
		f.users[email] = u
	}
	u.RoleID = roleID
	cp := *u
	return &cp, nil
}

func (f *fakeBootstrap) SeedDemo(ctx context.Context) error {
	f.seeded = true
	return nil
}

type fakeRevoker struct{ revoked []string }

func (f *fakeRevoker) RevokeAllForUser(ctx context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func TestBootstrapPromotesModerator(t *testing.T) {
	repo := &fakeBootstrap{users: map[string]*models.User{
		"duyet@tdmu.edu.vn": {ID: "u-1", Email: "duyet@tdmu.edu.vn", RoleID: int(api.RoleUser)},
	}}
	rev := &fakeRevoker{}
	Bootstrap(context.Background(), Config{BootstrapModeratorEmail: "duyet@tdmu.edu.vn", SeedDemo: true}, repo, rev)

	if !repo.seeded {
		t.Fatal("expected demo seed")
	}
	if repo.users["duyet@tdmu.edu.vn"].RoleID != int(api.RoleModerator) {
		t.Fatal("expected moderator role")
	}
	if len(rev.revoked) != 1 || rev.revoked[0] != "u-1" {
		t.Fatalf("expected sessions revoked for u-1, got %v", rev.revoked)
	}

	// 角色未变则不再撤销
	Bootstrap(context.Background(), Config{BootstrapModeratorEmail: "duyet@tdmu.edu.vn"}, repo, rev)
	if len(rev.revoked) != 1 {
		t.Fatalf("unexpected revoke: %v", rev.revoked)
	}
}
