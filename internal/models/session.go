package models

import "time"

// Period is the semester a student applies for.
type Period string

const (
	PeriodFall   Period = "fall"
	PeriodSpring Period = "spring"
)

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	return p == PeriodFall || p == PeriodSpring
}

// AdvisingSession tracks one student's progress through the workflow.
// HomeUniversity never changes after creation; Period stays nil until a
// destination step commits successfully.
type AdvisingSession struct {
	ID             string    `json:"id"`
	HomeUniversity string    `json:"home_university"`
	Period         *Period   `json:"period,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its deadline.
func (s *AdvisingSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
