package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/1001pranav/fintrax/internal/keymap"
)

// rankShortcuts orders the shortcut table by how well each entry matches the
// palette query. A substring hit ranks by its position; otherwise the query
// is compared against each word of the description with an edit-distance
// tolerance of half the query length, so small typos still find the command.
func rankShortcuts(query string, defs []keymap.Shortcut) []keymap.Shortcut {
	q := strings.ToLower(strings.TrimSpace(query))
	enabled := make([]keymap.Shortcut, 0, len(defs))
	for _, d := range defs {
		if !d.Disabled {
			enabled = append(enabled, d)
		}
	}
	if q == "" {
		return enabled
	}
	type scored struct {
		def   keymap.Shortcut
		score int
	}
	var out []scored
	for _, d := range enabled {
		s, ok := matchScore(q, strings.ToLower(d.Description+" "+d.ID))
		if !ok {
			continue
		}
		out = append(out, scored{def: d, score: s})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	ranked := make([]keymap.Shortcut, len(out))
	for i, s := range out {
		ranked[i] = s.def
	}
	return ranked
}

func matchScore(q, text string) (int, bool) {
	if i := strings.Index(text, q); i >= 0 {
		return i, true
	}
	best := -1
	for _, word := range strings.FieldsFunc(text, func(r rune) bool { return r == ' ' || r == '-' }) {
		d := levenshtein.ComputeDistance(q, word)
		if d*2 > len(q) {
			continue
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0, false
	}
	// fuzzy hits always sort after substring hits
	return 1000 + best, true
}
