package backup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDuplicates(t *testing.T) {
	t.Parallel()

	existing := []Record{{"id": 1}, {"id": 2}}
	incoming := []Record{{"id": 2}, {"id": 3}}

	dupes, unique := DetectDuplicates(existing, incoming, "id")
	require.Equal(t, []Record{{"id": 2}}, dupes)
	require.Equal(t, []Record{{"id": 3}}, unique)
}

func TestDetectDuplicatesDefaultsIDField(t *testing.T) {
	t.Parallel()

	dupes, unique := DetectDuplicates([]Record{{"id": "a"}}, []Record{{"id": "a"}, {"name": "no id"}}, "")
	require.Len(t, dupes, 1)
	require.Len(t, unique, 1)
}

func TestDetectDuplicatesCustomField(t *testing.T) {
	t.Parallel()

	existing := []Record{{"task_id": "t1"}}
	incoming := []Record{{"task_id": "t1"}, {"task_id": "t9"}}
	dupes, unique := DetectDuplicates(existing, incoming, "task_id")
	require.Equal(t, "t1", dupes[0]["task_id"])
	require.Equal(t, "t9", unique[0]["task_id"])
}

func TestNearDuplicates(t *testing.T) {
	t.Parallel()

	existing := []Record{
		{"name": "DAN MURPHYS MELBOURNE", "amount": 20.0},
		{"name": "RENT", "amount": 1800.0},
	}
	incoming := []Record{
		{"name": "Dan Murphys Melbourn", "amount": 20.0}, // near match
		{"name": "completely different", "amount": 20.0}, // same amount, far name
		{"name": "RENT", "amount": 1750.0},               // amount differs
	}

	hits := NearDuplicates(existing, incoming)
	require.Len(t, hits, 1)
	require.Equal(t, "Dan Murphys Melbourn", hits[0].Incoming["name"])
	require.Greater(t, hits[0].Similarity, 0.6)
}
