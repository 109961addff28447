package notifications

import (
	"sync"
	"time"
)

// AdminCounter tallies deliveries for one admin recipient.
type AdminCounter struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// StatsSnapshot is the read-only view served by the stats endpoint.
type StatsSnapshot struct {
	TotalMessagesSent   int                     `json:"totalMessagesSent"`
	TotalMessagesFailed int                     `json:"totalMessagesFailed"`
	TotalBookings       int                     `json:"totalBookings"`
	LastSentAt          *time.Time              `json:"lastSentAt"`
	MessagesPerAdmin    map[string]AdminCounter `json:"messagesPerAdmin"`
}

// Stats tracks WhatsApp delivery counts in process memory, like the rest of
// the dashboard's best-effort telemetry. Counters reset on restart.
type Stats struct {
	mu       sync.Mutex
	snapshot StatsSnapshot
}

func NewStats() *Stats {
	return &Stats{snapshot: StatsSnapshot{MessagesPerAdmin: make(map[string]AdminCounter)}}
}

func (s *Stats) TrackMessageSuccess(adminName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.TotalMessagesSent++
	now := time.Now()
	s.snapshot.LastSentAt = &now

	counter := s.snapshot.MessagesPerAdmin[adminName]
	counter.Sent++
	s.snapshot.MessagesPerAdmin[adminName] = counter
}

func (s *Stats) TrackMessageFailure(adminName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.TotalMessagesFailed++

	counter := s.snapshot.MessagesPerAdmin[adminName]
	counter.Failed++
	s.snapshot.MessagesPerAdmin[adminName] = counter
}

func (s *Stats) TrackBookingSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.TotalBookings++
}

// Snapshot copies the counters out from under the lock.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.snapshot
	out.MessagesPerAdmin = make(map[string]AdminCounter, len(s.snapshot.MessagesPerAdmin))
	for name, counter := range s.snapshot.MessagesPerAdmin {
		out.MessagesPerAdmin[name] = counter
	}
	return out
}
