package models

import "time"

// Review status constants for a DuplicateReview's lifecycle.
const (
	ReviewStatusPending  = "pending"
	ReviewStatusInReview = "in_review"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// DuplicateReview queues a borderline-scored pair (spec §8's documented
// allowed-false-positive band, roughly 0.70-0.85) for human adjudication
// instead of silently dropping it below the 0.85 emission threshold.
type DuplicateReview struct {
	ID         string     `bson:"_id,omitempty" json:"id,omitempty"`
	Name1      string     `bson:"name1" json:"name1"`
	Name2      string     `bson:"name2" json:"name2"`
	Score      float64    `bson:"score" json:"score"`
	Status     string     `bson:"status" json:"status"`
	ReviewerID *string    `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	Decision   *bool      `bson:"decision,omitempty" json:"decision,omitempty"`
	ReviewedAt *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

// NewDuplicateReview builds a pending review row for a pair that scored
// inside the review band.
func NewDuplicateReview(id, name1, name2 string, score float64) *DuplicateReview {
	return &DuplicateReview{
		ID:        id,
		Name1:     name1,
		Name2:     name2,
		Score:     score,
		Status:    ReviewStatusPending,
		CreatedAt: time.Now(),
	}
}

// Approve records a reviewer's confirmation that the pair is a true
// duplicate.
func (r *DuplicateReview) Approve(reviewerID string) {
	now := time.Now()
	decision := true
	r.Status = ReviewStatusApproved
	r.ReviewerID = &reviewerID
	r.Decision = &decision
	r.ReviewedAt = &now
}

// Reject records a reviewer's rejection of the pair as a false positive.
func (r *DuplicateReview) Reject(reviewerID string) {
	now := time.Now()
	decision := false
	r.Status = ReviewStatusRejected
	r.ReviewerID = &reviewerID
	r.Decision = &decision
	r.ReviewedAt = &now
}
