package identity

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StaticProvider 固定账号的身份提供方，开发和测试时替代真实 OAuth 流程；
// 它会签发一个 HS256 的 ID token，TokenAuthenticator 用同一密钥即可校验
type StaticProvider struct {
	Email    string
	Name     string
	Secret   []byte
	Issuer   string
	Audience string
	TTL      time.Duration

	mu      sync.Mutex
	current *Identity
}

func (p *StaticProvider) SignIn(ctx context.Context) (Identity, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	if email == "" {
		return Identity{}, ErrNoEmail
	}
	tok, err := p.mint(email)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{IDToken: tok, Email: email}
	p.mu.Lock()
	p.current = &id
	p.mu.Unlock()
	return id, nil
}

func (p *StaticProvider) mint(email string) (string, error) {
	ttl := p.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	now := time.Now()
	verified := true
	claims := Claims{
		Email:         email,
		EmailVerified: &verified,
		Name:          p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			Issuer:    p.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if p.Audience != "" {
		claims.Audience = jwt.ClaimStrings{p.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.Secret)
}

func (p *StaticProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	return nil
}

func (p *StaticProvider) CurrentUser(ctx context.Context) (*Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil, nil
	}
	cp := *p.current
	return &cp, nil
}
