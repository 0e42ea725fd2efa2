package services

import (
	"context"
	"sync"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"gorm.io/gorm"
)

type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	College     string    `json:"college"`
	HighScore   int       `json:"highScore"`
	LastAttempt time.Time `json:"lastAttempt"`
}

// In-memory cache: topic -> {Entries, Expiry}
type cachedLeaderboard struct {
	Entries   []LeaderboardEntry
	Limit     int
	ExpiresAt time.Time
}

var (
	leaderboardCache = make(map[string]cachedLeaderboard)
	lbMutex          sync.RWMutex
	lbTTL            = 10 * time.Second
)

func invalidateLeaderboard(topic string) {
	lbMutex.Lock()
	defer lbMutex.Unlock()
	delete(leaderboardCache, topic)
}

// sweepLeaderboardCache drops expired topics. The caller holds lbMutex.
func sweepLeaderboardCache(now time.Time) {
	for topic, cached := range leaderboardCache {
		if !now.Before(cached.ExpiresAt) {
			delete(leaderboardCache, topic)
		}
	}
}

// TopicLeaderboard ranks users by high score for a topic. Ties go to the
// user whose last attempt is older.
func TopicLeaderboard(ctx context.Context, db *gorm.DB, topic string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	lbMutex.RLock()
	if cached, ok := leaderboardCache[topic]; ok && cached.Limit >= limit && time.Now().Before(cached.ExpiresAt) {
		lbMutex.RUnlock()
		return cached.Entries[:min(limit, len(cached.Entries))], nil
	}
	lbMutex.RUnlock()

	entries := []LeaderboardEntry{}
	err := db.WithContext(ctx).
		Table(models.UserScore{}.TableName()+" AS s").
		Select("s.user_id AS user_id, u.username AS username, u.college AS college, s.high_score AS high_score, s.last_attempt AS last_attempt").
		Joins("JOIN "+models.User{}.TableName()+" AS u ON u.id = s.user_id").
		Where("s.topic = ?", topic).
		Order("s.high_score desc").Order("s.last_attempt asc").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	// Empty boards are not cached, so arbitrary topics from the public route
	// never take a slot.
	if len(entries) > 0 {
		lbMutex.Lock()
		sweepLeaderboardCache(time.Now())
		leaderboardCache[topic] = cachedLeaderboard{
			Entries:   entries,
			Limit:     limit,
			ExpiresAt: time.Now().Add(lbTTL),
		}
		lbMutex.Unlock()
	}

	return entries, nil
}
