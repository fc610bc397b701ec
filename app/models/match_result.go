package models

import "time"

// MatchResult is the outcome of scoring one pair of company names.
type MatchResult struct {
	Name1       string    `json:"name1" bson:"name1"`
	Name2       string    `json:"name2" bson:"name2"`
	Country1    string    `json:"country1" bson:"country1"`
	Country2    string    `json:"country2" bson:"country2"`
	Score       float64   `json:"score" bson:"score"`
	HasOpinion  bool      `json:"has_opinion" bson:"has_opinion"`
	ComparedAt  time.Time `json:"compared_at" bson:"compared_at"`
}

// DuplicatePair is one surviving candidate from a duplicate-finder run
// (spec §4.6), always scored above the emission threshold.
type DuplicatePair struct {
	Name1 string  `json:"name1" bson:"name1"`
	Name2 string  `json:"name2" bson:"name2"`
	Score float64 `json:"score" bson:"score"`
}

// Job statuses for asynchronous duplicate-finder runs.
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// DedupeJob tracks an in-flight or completed find_duplicates run over a
// batch of names submitted through the API.
type DedupeJob struct {
	ID          string          `json:"id" bson:"_id,omitempty"`
	Status      string          `json:"status" bson:"status"`
	TotalNames  int             `json:"total_names" bson:"total_names"`
	Pairs       []DuplicatePair `json:"pairs,omitempty" bson:"pairs,omitempty"`
	Error       string          `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	CompletedAt time.Time       `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}
