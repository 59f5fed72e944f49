package backup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ValidateItems runs the minimal per-collection shape check over items and
// splits them into the records that passed and one error string per record
// that failed. A record either passes whole or is excluded whole; there is
// no partial-field import. Indexes in error strings are 0-based.
func ValidateItems(typ string, items []Record) (valid []Record, errs []string) {
	for i, rec := range items {
		if reason := checkRecord(typ, rec); reason != "" {
			errs = append(errs, fmt.Sprintf("%s[%d]: %s", typ, i, reason))
			continue
		}
		valid = append(valid, rec)
	}
	return valid, errs
}

func checkRecord(typ string, rec Record) string {
	switch typ {
	case TypeProjects, TypeRoadmaps:
		if !hasText(rec, "name") {
			return "missing required field \"name\""
		}
	case TypeTasks:
		if !hasText(rec, "title") {
			return "missing required field \"title\""
		}
	case TypeTransactions, TypeSavings:
		if !hasText(rec, "name") && !hasText(rec, "source") {
			return "missing required field \"name\" or \"source\""
		}
		if !isNumeric(rec["amount"]) {
			return "field \"amount\" must be numeric"
		}
	case TypeLoans:
		if !hasText(rec, "name") {
			return "missing required field \"name\""
		}
		if !isNumeric(rec["total_amount"]) {
			return "field \"total_amount\" must be numeric"
		}
	default:
		return fmt.Sprintf("unknown collection type %q", typ)
	}
	return ""
}

func hasText(rec Record, field string) bool {
	v, ok := rec[field]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

// isNumeric accepts JSON numbers in their decoded forms plus numeric
// strings, since CSV-sourced records carry every value as a string.
func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int64, int32:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	default:
		return false
	}
}
