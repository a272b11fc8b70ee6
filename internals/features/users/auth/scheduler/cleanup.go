package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	authModel "sindiplus_backend/internals/features/users/auth/model"
)

// StartAuthCleanupScheduler purges expired blacklist entries and refresh
// token hashes every night.
func StartAuthCleanupScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		now := time.Now().UTC()

		res := db.Where("expires_at < ?", now).Delete(&authModel.TokenBlacklistModel{})
		if res.Error != nil {
			log.Printf("[ERROR] blacklist cleanup: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[INFO] blacklist cleanup: %d rows purged", res.RowsAffected)
		}

		res = db.Where("expires_at < ?", now).Delete(&authModel.RefreshTokenModel{})
		if res.Error != nil {
			log.Printf("[ERROR] refresh token cleanup: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[INFO] refresh token cleanup: %d rows purged", res.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("[ERROR] cleanup scheduler: %v", err)
		return c
	}
	c.Start()
	return c
}
