package stats

import (
	"context"
	"fmt"

	"github.com/adibarra/shadle/internal/db"
)

// ProcessChunk builds a partial tries distribution from one page of attempt
// rows. Only completed attempts count, matching the SQL-side histogram.
func ProcessChunk(records []db.Attempt) Distribution {
	dist := Distribution{}
	for _, rec := range records {
		if !rec.Completed {
			continue
		}
		dist[int(rec.Tries)]++
	}
	return dist
}

// MergeDistributions combines two partial distributions without mutating
// either input. The merge is associative and commutative, so partials may be
// combined in any order and any chunking of the same dataset produces the
// same result.
func MergeDistributions(d1, d2 Distribution) Distribution {
	merged := make(Distribution, len(d1)+len(d2))
	for tries, count := range d1 {
		merged[tries] += count
	}
	for tries, count := range d2 {
		merged[tries] += count
	}
	return merged
}

// AttemptPager supplies fixed-size pages of attempt rows in a stable order.
type AttemptPager interface {
	AttemptPage(ctx context.Context, prefix string, limit, offset int32) ([]db.Attempt, error)
}

// StreamDistribution walks all attempts under an id prefix in bounded pages
// and merges the per-page partial distributions. A page shorter than the
// chunk size ends the walk, so memory stays bounded regardless of how many
// rows exist.
func StreamDistribution(ctx context.Context, pager AttemptPager, prefix string, chunkSize int32) (Distribution, error) {
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	dist := Distribution{}
	for offset := int32(0); ; offset += chunkSize {
		page, err := pager.AttemptPage(ctx, prefix, chunkSize, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch attempt page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			break
		}
		dist = MergeDistributions(dist, ProcessChunk(page))
		if int32(len(page)) < chunkSize {
			break
		}
	}
	return dist, nil
}
