package backup

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DetectDuplicates partitions incoming into records whose id field value
// already appears among existing and records that are new. Pure and
// synchronous; records without the id field are treated as unique.
func DetectDuplicates(existing, incoming []Record, idField string) (duplicates, unique []Record) {
	if idField == "" {
		idField = "id"
	}
	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		if v, ok := rec[idField]; ok {
			seen[fmt.Sprint(v)] = true
		}
	}
	for _, rec := range incoming {
		v, ok := rec[idField]
		if ok && seen[fmt.Sprint(v)] {
			duplicates = append(duplicates, rec)
		} else {
			unique = append(unique, rec)
		}
	}
	return duplicates, unique
}

// NearDuplicate pairs an incoming record with an existing one that looks
// like the same entry under a different id.
type NearDuplicate struct {
	Existing   Record
	Incoming   Record
	Similarity float64
}

// NearDuplicates flags incoming finance records whose amount matches an
// existing record and whose name is within edit distance: ratio of
// levenshtein distance to the longer name below 0.4. Intended as a
// pre-import review aid; it never blocks an import on its own.
func NearDuplicates(existing, incoming []Record) []NearDuplicate {
	var out []NearDuplicate
	for _, inc := range incoming {
		incName := recordName(inc)
		if incName == "" || !isNumeric(inc["amount"]) {
			continue
		}
		for _, ex := range existing {
			exName := recordName(ex)
			if exName == "" || fmt.Sprint(ex["amount"]) != fmt.Sprint(inc["amount"]) {
				continue
			}
			maxLen := len(exName)
			if len(incName) > maxLen {
				maxLen = len(incName)
			}
			if maxLen == 0 {
				continue
			}
			dist := levenshtein.ComputeDistance(strings.ToUpper(exName), strings.ToUpper(incName))
			if float64(dist)/float64(maxLen) >= 0.4 {
				continue
			}
			out = append(out, NearDuplicate{
				Existing:   ex,
				Incoming:   inc,
				Similarity: 1 - float64(dist)/float64(maxLen),
			})
		}
	}
	return out
}

func recordName(rec Record) string {
	for _, f := range []string{"name", "source"} {
		if s, ok := rec[f].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
