// Package identity 外部身份提供方适配层：取得 ID token，并换成带邮箱的已验证凭据。
package identity

import (
	"context"
	"errors"
	"log"
)

var (
	ErrNoIDToken        = errors.New("không nhận được idToken từ nhà cung cấp định danh")
	ErrNoEmail          = errors.New("id token has no email claim")
	ErrEmailNotVerified = errors.New("email not verified by identity provider")
	ErrNotSignedIn      = errors.New("not signed in")
	ErrNoVerifier       = errors.New("no token verification key configured")
)

// Identity 身份提供方登录结果
type Identity struct {
	IDToken string
	Email   string
}

// Credential 用 ID token 换来的已验证身份
type Credential struct {
	Subject string
	Email   string
	Name    string
}

type Provider interface {
	SignIn(ctx context.Context) (Identity, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*Identity, error)
}

// Authenticator 对应"后端认证"一层：校验 ID token，维护自己的登录态
type Authenticator interface {
	SignInWithToken(ctx context.Context, idToken string) (Credential, error)
	SignOut(ctx context.Context) error
}

// ResetStale 进入登录页时先清掉上一个账号残留的外部登录态；错误只记录
func ResetStale(ctx context.Context, p Provider) {
	cur, err := p.CurrentUser(ctx)
	if err != nil {
		log.Printf("identity: check current user: %v", err)
		return
	}
	if cur == nil {
		return
	}
	if err := p.SignOut(ctx); err != nil {
		log.Printf("identity: sign out stale user %s: %v", cur.Email, err)
	}
}
