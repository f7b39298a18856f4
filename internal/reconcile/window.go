package reconcile

import (
	"time"

	"judicial_capture/internal/domain"
)

// MatchWindowDays is how far before a communication's availability date a
// pending item may have been noticed and still be considered a match.
const MatchWindowDays = 3

// MatchDeadline returns the start of the court day MatchWindowDays before
// the availability date. The day is taken in domain.CourtLocation whatever
// location available carries.
func MatchDeadline(available time.Time) time.Time {
	y, m, d := available.In(domain.CourtLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, domain.CourtLocation).AddDate(0, 0, -MatchWindowDays)
}
