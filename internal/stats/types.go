package stats

// RandomPoolID is the pseudo puzzle id the whole random pool is published
// under.
const RandomPoolID = "random"

// Distribution maps a tries count to the number of completed attempts that
// took exactly that many tries.
type Distribution map[int]int

// PuzzleStats is the published per-puzzle summary. It is derived data,
// always reconstructable from the attempt ledger.
type PuzzleStats struct {
	PuzzleID          string       `json:"puzzleId"`
	TotalAttempts     int64        `json:"totalAttempts"`
	TotalOwners       int64        `json:"totalOwners"`
	AvgTries          float64      `json:"avgTries"`
	SuccessRate       float64      `json:"successRate"`
	FailedAttempts    int64        `json:"failedAttempts"`
	TriesDistribution Distribution `json:"triesDistribution"`
	CompletionRate    float64      `json:"completionRate"`
}

// ZeroStats is the documented default served before a puzzle has ever been
// aggregated: every counter zero, the standard 1..6 buckets present.
func ZeroStats(puzzleID string) PuzzleStats {
	return PuzzleStats{
		PuzzleID:          puzzleID,
		TriesDistribution: Distribution{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0},
	}
}
