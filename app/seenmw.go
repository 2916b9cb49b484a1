// app/seenmw.go
package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type SeenToucher interface {
	TouchUserSeen(ctx context.Context, userID string) error
}

// TouchLastSeen 每个用户每 throttle 最多写一次 last_seen_at
func TouchLastSeen(users SeenToucher, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("userID")
		if uid == "" {
			c.Next()
			return
		}

		key := "borrow:lastseen:" + uid
		if ok, err := rdb.SetNX(c.Request.Context(), key, "1", throttle).Result(); err != nil {
			log.Printf("lastseen: setnx user=%s: %v", uid, err)
		} else if ok {
			if err := users.TouchUserSeen(c.Request.Context(), uid); err != nil {
				log.Printf("lastseen: touch user=%s: %v", uid, err)
			}
		}
		c.Next()
	}
}
