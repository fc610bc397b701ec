// Package services hosts the application-level orchestration around
// the internal matching packages: caching, async job tracking, and the
// glue that the controllers call into.
package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	corpmatch "github.com/corpresolve/corpmatch"
	"github.com/corpresolve/corpmatch/app/config"
	"github.com/corpresolve/corpmatch/app/models"
	"github.com/corpresolve/corpmatch/helpers/utils"
	"github.com/corpresolve/corpmatch/internal/dedupe"
)

// DedupeService is the application-facing entry point wrapping the
// corpmatch facade (catalog, retriever, matcher, duplicate-finder
// engine, city matcher) with a pluggable cache in front of the
// pairwise scorer and in-process job/review tracking.
type DedupeService struct {
	core   *corpmatch.Core
	cache  ICacheService
	logger *zap.Logger

	jobsMu sync.RWMutex
	jobs   map[string]*models.DedupeJob

	reviewMu sync.RWMutex
	reviews  map[string]*models.DuplicateReview
}

// NewDedupeService wires the public DedupeService over an already-Load'd
// corpmatch.Core.
func NewDedupeService(core *corpmatch.Core, cache ICacheService, logger *zap.Logger) *DedupeService {
	return &DedupeService{
		core:    core,
		cache:   cache,
		logger:  logger,
		jobs:    make(map[string]*models.DedupeJob),
		reviews: make(map[string]*models.DuplicateReview),
	}
}

// pairFingerprint is the commutative cache key for a (name1, name2)
// pair: sha256(min(name1,name2) + 0x1F + max(name1,name2)).
func pairFingerprint(name1, name2 string) string {
	a, b := name1, name2
	if b < a {
		a, b = b, a
	}
	sum := sha256.Sum256([]byte(a + "\x1f" + b))
	return fmt.Sprintf("%x", sum)
}

// MatchNames scores one pair of company names, consulting the cache
// first (spec §6 match_corporate_names).
func (s *DedupeService) MatchNames(ctx context.Context, name1, name2, country1, country2 string) (float64, bool, error) {
	key := pairFingerprint(name1, name2)

	if cached, found, err := s.cache.Get(ctx, key); err == nil && found {
		return cached.Score, cached.HasOpinion, nil
	}

	score, ok := s.core.MatchCorporateNames(name1, name2, country1, country2)
	result := &models.MatchResult{
		Name1:      name1,
		Name2:      name2,
		Country1:   country1,
		Country2:   country2,
		Score:      score,
		HasOpinion: ok,
		ComparedAt: time.Now(),
	}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("failed to cache match result", zap.Error(err), zap.String("key", key))
	}

	if ok && score >= config.C.Thresholds.ReviewBandLow && score < dedupe.ScoreThreshold {
		s.queueReview(key, name1, name2, score)
	}

	return score, ok, nil
}

// queueReview enqueues a borderline pair for human adjudication, keyed
// by the same commutative fingerprint as the match cache so repeated
// scoring of the same pair doesn't pile up duplicate review rows.
func (s *DedupeService) queueReview(key, name1, name2 string, score float64) {
	s.reviewMu.Lock()
	defer s.reviewMu.Unlock()
	if _, exists := s.reviews[key]; exists {
		return
	}
	s.reviews[key] = models.NewDuplicateReview(key, name1, name2, score)
}

// ListReviews returns every queued review.
func (s *DedupeService) ListReviews() []*models.DuplicateReview {
	s.reviewMu.RLock()
	defer s.reviewMu.RUnlock()
	out := make([]*models.DuplicateReview, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	return out
}

// DecideReview records a reviewer's approve/reject decision on a queued
// pair.
func (s *DedupeService) DecideReview(reviewID, reviewerID string, approve bool) (*models.DuplicateReview, bool) {
	s.reviewMu.Lock()
	defer s.reviewMu.Unlock()
	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, false
	}
	if approve {
		r.Approve(reviewerID)
	} else {
		r.Reject(reviewerID)
	}
	return r, true
}

// FindDuplicates runs the full duplicate-finder pipeline over names
// synchronously (spec §4.6 find_duplicates).
func (s *DedupeService) FindDuplicates(ctx context.Context, names []string) ([]models.DuplicatePair, error) {
	pairs, err := s.core.FindDuplicates(ctx, names)
	if err != nil {
		return nil, err
	}

	out := make([]models.DuplicatePair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.DuplicatePair{Name1: p.Name1, Name2: p.Name2, Score: p.Score})
	}
	return out, nil
}

// SubmitDedupeJob starts a find_duplicates run in the background and
// returns a job handle the caller can poll.
func (s *DedupeService) SubmitDedupeJob(names []string) *models.DedupeJob {
	job := &models.DedupeJob{
		ID:         utils.GenerateUUID(),
		Status:     models.JobStatusPending,
		TotalNames: len(names),
		CreatedAt:  time.Now(),
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	go s.runDedupeJob(job.ID, names)

	return job
}

func (s *DedupeService) runDedupeJob(jobID string, names []string) {
	s.setJobStatus(jobID, models.JobStatusRunning, nil, "")

	pairs, err := s.FindDuplicates(context.Background(), names)
	if err != nil {
		s.setJobStatus(jobID, models.JobStatusFailed, nil, err.Error())
		return
	}
	s.setJobStatus(jobID, models.JobStatusDone, pairs, "")
}

func (s *DedupeService) setJobStatus(jobID, status string, pairs []models.DuplicatePair, errMsg string) {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return
	}
	job.Status = status
	if pairs != nil {
		job.Pairs = pairs
	}
	if errMsg != "" {
		job.Error = errMsg
	}
	if status == models.JobStatusDone || status == models.JobStatusFailed {
		job.CompletedAt = time.Now()
	}
}

// GetJob returns the current state of a previously submitted job.
func (s *DedupeService) GetJob(jobID string) (*models.DedupeJob, bool) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	job, ok := s.jobs[jobID]
	return job, ok
}

// RetrieveLegalForm returns the canonical legal-form string recognized
// in name for country, if any (spec §6 retrieve_legal_form).
func (s *DedupeService) RetrieveLegalForm(name, country string) (string, bool) {
	return s.core.RetrieveLegalForm(name, country)
}

// CompanyNameWithoutLegalForm strips the recognized legal-form suffix
// from name, restoring surrounding tokens (spec §6
// company_name_without_legal_form).
func (s *DedupeService) CompanyNameWithoutLegalForm(name, country string) string {
	return s.core.CompanyNameWithoutLegalForm(name, country)
}

// CleanCompanyName applies the static cleaner only (spec §6
// clean_company_name).
func (s *DedupeService) CleanCompanyName(name string) string {
	return s.core.CleanCompanyName(name)
}

// CleanCompanyNameAndRemoveLegalForm cleans and strips any recognized
// legal-form suffix using catalog membership alone, independent of
// country (spec §6 clean_company_name_and_remove_legal_form).
func (s *DedupeService) CleanCompanyNameAndRemoveLegalForm(name string) string {
	return s.core.CleanCompanyNameAndRemoveLegalForm(name)
}

// CanonicalCity resolves a free-text city name to its canonical form
// using the city-matcher collaborator, when one is configured.
func (s *DedupeService) CanonicalCity(ctx context.Context, city string) (string, bool) {
	return s.core.CanonicalCity(ctx, city)
}
