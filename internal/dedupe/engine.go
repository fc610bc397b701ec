// Package dedupe implements the duplicate-finder engine (spec §4.6): a
// data-parallel fork/join over blocks of names sharing a short initial
// signature, with a cheap word-overlap filter ahead of the full scorer.
package dedupe

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/corpresolve/corpmatch/internal/corpmatch"
	"github.com/corpresolve/corpmatch/internal/textutil"
)

// Pair is one detected duplicate candidate.
type Pair struct {
	Name1 string
	Name2 string
	Score float64
}

// ScoreThreshold is the cutoff a pair's score must exceed to be
// emitted (spec §4.6 step 4).
const ScoreThreshold = 0.85

// Engine runs find_duplicates over a shared corporate name matcher.
type Engine struct {
	matcher *corpmatch.Matcher
}

// NewEngine builds a duplicate-finder engine over a ready matcher.
func NewEngine(matcher *corpmatch.Matcher) *Engine {
	return &Engine{matcher: matcher}
}

type blockEntry struct {
	idx    int
	tokens []string
}

// FindDuplicates blocks names by a short token signature and scores
// every in-block pair concurrently, one goroutine per block with at
// most eight blocks in flight (spec §4.6 / §5). Cancellation via ctx is
// cooperative at block boundaries.
func (e *Engine) FindDuplicates(ctx context.Context, names []string) ([]Pair, error) {
	blocks := make(map[string][]blockEntry)
	for i, name := range names {
		if textutil.IsBlank(name) {
			continue
		}
		tokens := textutil.TokenList(textutil.NormalizedName(name))
		key := textutil.BlockKey(tokens)
		blocks[key] = append(blocks[key], blockEntry{idx: i, tokens: tokens})
	}

	var mu sync.Mutex
	var results []Pair

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, entries := range blocks {
		entries := entries
		if len(entries) < 2 {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			local := e.scoreBlock(names, entries)
			if len(local) > 0 {
				mu.Lock()
				results = append(results, local...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) scoreBlock(names []string, entries []blockEntry) []Pair {
	var local []Pair
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if !tokensOverlap(a.tokens, b.tokens) {
				continue
			}
			score, ok := e.matcher.Match(names[a.idx], names[b.idx], "", "")
			if !ok || score <= ScoreThreshold {
				continue
			}
			local = append(local, Pair{Name1: names[a.idx], Name2: names[b.idx], Score: score})
		}
	}
	return local
}

// tokensOverlap is the cheap pre-filter of spec §4.6 step 4: any token
// of a equal to or a strict prefix of a token of b, or vice versa.
func tokensOverlap(a, b []string) bool {
	for _, ta := range a {
		for _, tb := range b {
			if ta == tb || strings.HasPrefix(tb, ta) || strings.HasPrefix(ta, tb) {
				return true
			}
		}
	}
	return false
}
