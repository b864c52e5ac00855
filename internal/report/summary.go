// Package report builds in-memory summaries over the appointment history
// and exports them to Excel workbooks.
package report

import (
	"sort"

	"github.com/RathijitAich/Appointmenet-Scheduler/internal/models"
)

// Summary aggregates the full appointment history. Cancelled and rejected
// records are included: history is never deleted, so reporting sees it all.
type Summary struct {
	Total      int
	ByStatus   map[models.Status]int
	ByPriority map[models.Priority]int
	ByUser     map[string]int // appointments per participant, either side
}

// Build computes a summary over the given records.
func Build(appts []models.Appointment) Summary {
	s := Summary{
		ByStatus:   make(map[models.Status]int),
		ByPriority: make(map[models.Priority]int),
		ByUser:     make(map[string]int),
	}

	for _, a := range appts {
		s.Total++
		s.ByStatus[a.Status]++
		s.ByPriority[a.Priority]++
		s.ByUser[a.BookedBy]++
		if a.WithWhom != a.BookedBy {
			s.ByUser[a.WithWhom]++
		}
	}
	return s
}

// BusiestUsers returns participants ordered by appointment count, busiest
// first, usernames breaking ties.
func (s Summary) BusiestUsers() []string {
	users := make([]string, 0, len(s.ByUser))
	for u := range s.ByUser {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if s.ByUser[users[i]] != s.ByUser[users[j]] {
			return s.ByUser[users[i]] > s.ByUser[users[j]]
		}
		return users[i] < users[j]
	})
	return users
}
