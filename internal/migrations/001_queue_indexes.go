package migrations

import (
	"gorm.io/gorm"
)

// Migration001QueueIndexes adds composite indexes for the moderation queues,
// the per-topic quiz fetch and the leaderboard.
func Migration001QueueIndexes() Migration {
	indexes := []struct{ name, ddl string }{
		// WHERE status = 'pending' ORDER BY created_at, id
		{"idx_content_items_status_created", `CREATE INDEX IF NOT EXISTS idx_content_items_status_created ON content_items (status, created_at, id)`},
		{"idx_quiz_questions_status_created", `CREATE INDEX IF NOT EXISTS idx_quiz_questions_status_created ON quiz_questions (status, created_at, id)`},
		// WHERE topic = ? AND status = 'approved'
		{"idx_content_items_topic_status", `CREATE INDEX IF NOT EXISTS idx_content_items_topic_status ON content_items (topic, status)`},
		{"idx_quiz_questions_topic_status", `CREATE INDEX IF NOT EXISTS idx_quiz_questions_topic_status ON quiz_questions (topic, status)`},
		// WHERE topic = ? ORDER BY high_score DESC, last_attempt
		{"idx_user_scores_topic_rank", `CREATE INDEX IF NOT EXISTS idx_user_scores_topic_rank ON user_scores (topic, high_score DESC, last_attempt)`},
	}

	return Migration{
		ID:   "001_queue_indexes",
		Name: "Add moderation queue and leaderboard indexes",
		Up: func(db *gorm.DB) error {
			for _, idx := range indexes {
				if err := db.Exec(idx.ddl).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Down: func(db *gorm.DB) error {
			for _, idx := range indexes {
				if err := db.Exec("DROP INDEX IF EXISTS " + idx.name).Error; err != nil {
					return err
				}
			}
			return nil
		},
	}
}
