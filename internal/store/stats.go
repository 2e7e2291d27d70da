package store

import (
	"github.com/samber/lo"

	"github.com/askdeck/askdeck/internal/chat"
)

const recentSessionLimit = 10

// UserStats aggregates a user's saved activity for the dashboard view.
type UserStats struct {
	TotalChats        int
	TotalMessages     int
	TotalQuestions    int
	TotalReplies      int
	RecentSessions    []chat.Session
	GlobalSearchCount int
}

// Stats computes activity totals over the user's collection plus the global
// usage count. Guests get zero user totals but still see the global count.
func (o *SessionStore) Stats(userKey string, counter *UsageCounter) UserStats {
	sessions := o.Load(userKey)

	stats := UserStats{
		TotalChats:        len(sessions),
		GlobalSearchCount: counter.Current(),
	}
	for _, s := range sessions {
		stats.TotalMessages += len(s.Messages)
		stats.TotalQuestions += lo.CountBy(s.Messages, func(m chat.Message) bool {
			return m.Role == chat.RoleUser
		})
	}
	stats.TotalReplies = stats.TotalMessages - stats.TotalQuestions
	stats.RecentSessions = lo.Slice(sessions, 0, recentSessionLimit)
	return stats
}
