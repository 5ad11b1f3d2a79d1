// internals/features/users/auth/scheduler/cleanup.go
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "hadirku_backend/internals/features/users/auth/model"
)

// StartBlacklistCleanupScheduler bersihkan row blacklist & refresh token yang
// sudah expired tiap 1 jam supaya tabel tidak menggelembung.
func StartBlacklistCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			res := db.Where("expired_at < ?", now).Delete(&authModel.TokenBlacklist{})
			if res.Error != nil {
				log.Println("[SCHEDULER] gagal bersihkan token_blacklist:", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[SCHEDULER] 🧹 %d token blacklist expired dihapus", res.RowsAffected)
			}

			res = db.Where("expires_at < ?", now).Delete(&authModel.RefreshTokenModel{})
			if res.Error != nil {
				log.Println("[SCHEDULER] gagal bersihkan refresh_tokens:", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[SCHEDULER] 🧹 %d refresh token expired dihapus", res.RowsAffected)
			}
		}
	}()
}
