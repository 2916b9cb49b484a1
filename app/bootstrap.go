// app/bootstrap.go
package app

import (
	"context"
	"log"

	"equipment_borrow/api"
	"equipment_borrow/models"
)

type Bootstrapper interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	EnsureUser(ctx context.Context, email, displayName string, roleID int) (*models.User, error)
	SeedDemo(ctx context.Context) error
}

type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Bootstrap 启动时：可选写入演示数据，并保证配置的审批员账号存在
func Bootstrap(ctx context.Context, cfg Config, repo Bootstrapper, sessions SessionRevoker) {
	if cfg.SeedDemo {
		if err := repo.SeedDemo(ctx); err != nil {
			log.Printf("[BOOTSTRAP] seed demo data failed: %v", err)
		} else {
			log.Printf("[BOOTSTRAP] demo catalog seeded")
		}
	}

	if cfg.BootstrapModeratorEmail == "" {
		return
	}
	prev, _ := repo.FindUserByEmail(ctx, cfg.BootstrapModeratorEmail)
	u, err := repo.EnsureUser(ctx, cfg.BootstrapModeratorEmail, "", int(api.RoleModerator))
	if err != nil {
		log.Printf("[BOOTSTRAP] ensure moderator %s failed: %v", cfg.BootstrapModeratorEmail, err)
		return
	}
	// 角色变了，旧会话里的角色作废
	if prev != nil && prev.RoleID != u.RoleID {
		if err := sessions.RevokeAllForUser(ctx, u.ID); err != nil {
			log.Printf("[BOOTSTRAP] revoke sessions for %s: %v", u.Email, err)
		}
	}
	log.Printf("[BOOTSTRAP] moderator account ready: %s", u.Email)
}
