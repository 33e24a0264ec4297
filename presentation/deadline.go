package presentation

import (
	"fmt"
	"strings"
	"time"
)

type DeadlineBucket string

const (
	BucketExpired  DeadlineBucket = "expired"
	BucketToday    DeadlineBucket = "today"
	BucketOneDay   DeadlineBucket = "one-day"
	BucketFewDays  DeadlineBucket = "few-days"
	BucketManyDays DeadlineBucket = "many-days"
)

type Urgency string

const (
	UrgencyRed    Urgency = "red"
	UrgencyOrange Urgency = "orange"
	UrgencyGreen  Urgency = "green"
)

type DeadlineInfo struct {
	Bucket   DeadlineBucket `json:"bucket"`
	Label    string         `json:"label"`
	Urgency  Urgency        `json:"urgency"`
	DaysLeft int            `json:"daysLeft"`
}

// ClassifyDeadline buckets a YYYY-MM-DD shipping deadline by the number of
// calendar days between now and the deadline, both taken in now's location.
// It returns nil for a missing or malformed deadline.
func ClassifyDeadline(deadline *string, now time.Time) *DeadlineInfo {
	if deadline == nil || strings.TrimSpace(*deadline) == "" {
		return nil
	}
	target, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(*deadline), now.Location())
	if err != nil {
		return nil
	}

	days := daysBetween(now, target)
	switch {
	case days < 0:
		return &DeadlineInfo{Bucket: BucketExpired, Label: "Expired!", Urgency: UrgencyRed, DaysLeft: days}
	case days == 0:
		return &DeadlineInfo{Bucket: BucketToday, Label: "Today!", Urgency: UrgencyRed}
	case days == 1:
		return &DeadlineInfo{Bucket: BucketOneDay, Label: "1 day left", Urgency: UrgencyOrange, DaysLeft: 1}
	case days <= 3:
		return &DeadlineInfo{Bucket: BucketFewDays, Label: fmt.Sprintf("%d days left", days), Urgency: UrgencyOrange, DaysLeft: days}
	default:
		return &DeadlineInfo{Bucket: BucketManyDays, Label: fmt.Sprintf("%d days left", days), Urgency: UrgencyGreen, DaysLeft: days}
	}
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
