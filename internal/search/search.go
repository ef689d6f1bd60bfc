// Package search implements the two-tier ranking engine over session rows.
//
// Literal substring matches always outrank fuzzy matches: the substring tier
// assigns a fixed high score (plus a prefix bonus), while the fuzzy tier keeps
// rows whose weighted similarity clears a cutoff. Equal scores fall back to
// the snapshot's own ordering so the output is reproducible.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/hollowbyte/it2jump/internal/session"
)

// Ranking thresholds. Tunable; treat the current values as the contract.
const (
	SubstringScore = 100
	PrefixBonus    = 10
	FuzzyCutoff    = 40
)

type scoredRow struct {
	row   session.Row
	score int
}

// Rank filters rows against the query and orders them by descending score.
// An empty (or whitespace-only) query returns the rows unchanged.
func Rank(rows []session.Row, query string) []session.Row {
	q := normalize(query)
	if q == "" {
		return session.CloneRows(rows)
	}

	scored := make([]scoredRow, 0, len(rows))
	for _, row := range rows {
		text := candidateText(row)
		if strings.Contains(text, q) {
			score := SubstringScore
			if strings.HasPrefix(text, q) {
				score += PrefixBonus
			}
			scored = append(scored, scoredRow{row: row, score: score})
			continue
		}
		if score := similarity(q, text); score >= FuzzyCutoff {
			scored = append(scored, scoredRow{row: row, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.row.WindowIndex != b.row.WindowIndex {
			return a.row.WindowIndex < b.row.WindowIndex
		}
		if a.row.TabIndex != b.row.TabIndex {
			return a.row.TabIndex < b.row.TabIndex
		}
		return a.row.DisplayName() < b.row.DisplayName()
	})

	out := make([]session.Row, len(scored))
	for i, s := range scored {
		out[i] = s.row
	}
	return out
}

// RankStrict keeps only substring-tier rows, in their original order. It is
// the fallback mode for environments where fuzzy scoring is unwanted.
func RankStrict(rows []session.Row, query string) []session.Row {
	q := normalize(query)
	if q == "" {
		return session.CloneRows(rows)
	}
	out := make([]session.Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(candidateText(row), q) {
			out = append(out, row)
		}
	}
	return out
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// candidateText builds the only text the ranker may inspect: display name and
// the window/tab/session identity fields. Working directory and command line
// are display-only and deliberately excluded.
func candidateText(row session.Row) string {
	parts := []string{
		row.DisplayName(),
		row.SessionID,
		row.WindowID,
		strconv.Itoa(row.WindowIndex),
		row.TabID,
		strconv.Itoa(row.TabIndex),
	}
	joined := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			joined = append(joined, p)
		}
	}
	return strings.ToLower(strings.Join(joined, " "))
}

// similarity scores query against text in [0,100]. The score is the best of
// the whole-text Levenshtein ratio and the per-token ratios, which keeps short
// queries competitive against long candidate texts and tolerates token
// reordering.
func similarity(query, text string) int {
	best := ratio(query, text)
	for _, token := range strings.Fields(text) {
		if r := ratio(query, token); r > best {
			best = r
		}
	}
	return best
}

func ratio(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 100
	}
	longest := la
	if lb > longest {
		longest = lb
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	if dist >= longest {
		return 0
	}
	return 100 - (100*dist)/longest
}
