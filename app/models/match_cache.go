package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchCache is the persistent (MongoDB) record of one scored pair,
// keyed by a commutative fingerprint so (A,B) and (B,A) share an entry.
type MatchCache struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint  string             `bson:"fingerprint" json:"fingerprint"`
	Result       MatchResult        `bson:"result" json:"result"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount  int                `bson:"access_count" json:"access_count"`
}

// NewMatchCache builds a fresh cache record for a just-computed result.
func NewMatchCache(fingerprint string, result MatchResult) *MatchCache {
	now := time.Now()
	return &MatchCache{
		Fingerprint:  fingerprint,
		Result:       result,
		CreatedAt:    now,
		LastAccessed: now,
		AccessCount:  1,
	}
}

// UpdateAccess bumps the access bookkeeping for a cache hit.
func (mc *MatchCache) UpdateAccess() {
	mc.LastAccessed = time.Now()
	mc.AccessCount++
}
