package leaderboard

import (
	"sort"

	"github.com/Luapxanna/ops-pilot/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Entry is one user's leaderboard row.
type Entry struct {
	UserID     string  `json:"userId"`
	Name       string  `json:"name"`
	Efficiency float64 `json:"efficiency"`
	Badge      string  `json:"badge"`
}

// Service ranks users by completed tasks per logged hour.
type Service struct {
	db *gorm.DB
}

// NewService returns a Service bound to db.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Fetch builds the leaderboard: completed-task count divided by total
// logged hours, ranked descending, with a badge per tier.
func (s *Service) Fetch() ([]Entry, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "fetching users")
	}

	type counts struct {
		completed int
		hours     float64
	}
	byUser := make(map[string]*counts, len(users))
	for _, u := range users {
		byUser[u.ID] = &counts{}
	}

	var completedTasks []models.Task
	if err := s.db.Where("status = ?", models.StatusCompleted).Find(&completedTasks).Error; err != nil {
		return nil, errors.Wrap(err, "fetching completed tasks")
	}
	for _, task := range completedTasks {
		if task.AssigneeID == nil {
			continue
		}
		if c, ok := byUser[*task.AssigneeID]; ok {
			c.completed++
		}
	}

	var logs []models.TimeLog
	if err := s.db.Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "fetching time logs")
	}
	for _, log := range logs {
		if c, ok := byUser[log.UserID]; ok {
			c.hours += log.Hours
		}
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		c := byUser[u.ID]
		efficiency := 0.0
		if c.hours > 0 {
			efficiency = float64(c.completed) / c.hours
		}
		entries = append(entries, Entry{
			UserID:     u.ID,
			Name:       u.Name,
			Efficiency: efficiency,
			Badge:      badgeFor(efficiency),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Efficiency > entries[j].Efficiency
	})
	return entries, nil
}

func badgeFor(efficiency float64) string {
	switch {
	case efficiency > 5:
		return "Top Performer"
	case efficiency > 2:
		return "Task Slayer"
	default:
		return "Rising Star"
	}
}
