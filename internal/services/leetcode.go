package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/appnity/prepportal-backend/internal/models"
	apperrors "github.com/appnity/prepportal-backend/pkg/errors"
	"github.com/appnity/prepportal-backend/pkg/logger"
	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const leetcodeStatsQuery = `query userProblemsSolved($username: String!) {
  matchedUser(username: $username) {
    username
    submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
  }
}`

// LeetCodeStats is the snapshot stored on the user row.
type LeetCodeStats struct {
	Username string `json:"username"`
	All      int    `json:"all"`
	Easy     int    `json:"easy"`
	Medium   int    `json:"medium"`
	Hard     int    `json:"hard"`
}

type leetcodeResponse struct {
	Data struct {
		MatchedUser *struct {
			Username          string `json:"username"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// LeetCodeClient fetches public solve counts from the LeetCode GraphQL API.
type LeetCodeClient struct {
	http *resty.Client
}

func NewLeetCodeClient(endpoint string) *LeetCodeClient {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Referer", "https://leetcode.com")
	return &LeetCodeClient{http: client}
}

// FetchStats queries the stats for one LeetCode handle.
func (l *LeetCodeClient) FetchStats(ctx context.Context, handle string) (*LeetCodeStats, error) {
	var out leetcodeResponse
	resp, err := l.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"query":     leetcodeStatsQuery,
			"variables": map[string]string{"username": handle},
		}).
		SetResult(&out).
		Post("")
	if err != nil {
		return nil, apperrors.Upstream("leetcode sync failed", err)
	}
	if resp.IsError() {
		return nil, apperrors.Upstream("leetcode sync failed", nil)
	}
	if len(out.Errors) > 0 || out.Data.MatchedUser == nil {
		return nil, apperrors.NotFound("LeetCode user not found")
	}

	stats := &LeetCodeStats{Username: out.Data.MatchedUser.Username}
	for _, n := range out.Data.MatchedUser.SubmitStatsGlobal.AcSubmissionNum {
		switch strings.ToLower(n.Difficulty) {
		case "all":
			stats.All = n.Count
		case "easy":
			stats.Easy = n.Count
		case "medium":
			stats.Medium = n.Count
		case "hard":
			stats.Hard = n.Count
		}
	}
	return stats, nil
}

// SyncLeetCodeStats refreshes the snapshot stored on the user.
func SyncLeetCodeStats(ctx context.Context, db *gorm.DB, client *LeetCodeClient, userID string) (*LeetCodeStats, error) {
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, apperrors.FromDB(err, "User not found", "")
	}
	if strings.TrimSpace(user.LeetcodeID) == "" {
		return nil, apperrors.Validation("Set a LeetCode ID on your profile first")
	}

	stats, err := client.FetchStats(ctx, user.LeetcodeID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Str("leetcode_id", user.LeetcodeID).Msg("LeetCode sync failed")
		return nil, err
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	now := time.Now()
	if err := db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"leetcode_stats":     datatypes.JSON(raw),
		"leetcode_synced_at": now,
	}).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return stats, nil
}
