package backup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func bundleJSON(t *testing.T, data map[string][]Record) string {
	t.Helper()
	b := Bundle{
		Metadata: Metadata{ExportDate: "2024-06-01T00:00:00Z", Version: Version},
		Data:     data,
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	return string(raw)
}

func collectImporter(dst *map[string][]Record, typ string) ImportFunc {
	return func(_ context.Context, records []Record) error {
		(*dst)[typ] = records
		return nil
	}
}

func TestImportCompleteBackupPartialSuccess(t *testing.T) {
	t.Parallel()

	raw := bundleJSON(t, map[string][]Record{
		"tasks": {
			{"description": "no title here"},
			{"title": "ok"},
		},
	})
	got := map[string][]Record{}
	res, err := ImportCompleteBackup(context.Background(), strings.NewReader(raw), Importers{
		"tasks": collectImporter(&got, "tasks"),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.Imported["tasks"])
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "tasks[0]")
	require.Len(t, got["tasks"], 1)
	require.Equal(t, "ok", got["tasks"][0]["title"])
}

func TestImportCompleteBackupAllInvalid(t *testing.T) {
	t.Parallel()

	raw := bundleJSON(t, map[string][]Record{
		"tasks":    {{"description": "no title"}},
		"projects": {{"status": "active"}},
	})
	res, err := ImportCompleteBackup(context.Background(), strings.NewReader(raw), Importers{})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Empty(t, res.Imported)
	require.NotEmpty(t, res.Errors)
	require.Equal(t, "No valid records found in backup", res.Message)
}

func TestImportCompleteBackupFormatErrors(t *testing.T) {
	t.Parallel()

	importers := Importers{}
	_, err := ImportCompleteBackup(context.Background(), strings.NewReader("not json"), importers)
	require.Error(t, err)

	// metadata missing
	_, err = ImportCompleteBackup(context.Background(), strings.NewReader(`{"data":{}}`), importers)
	require.Error(t, err)

	// data missing
	_, err = ImportCompleteBackup(context.Background(),
		strings.NewReader(`{"metadata":{"exportDate":"2024-06-01T00:00:00Z","version":"1.0"}}`), importers)
	require.Error(t, err)
}

func TestImportCompleteBackupImporterFailureIsolated(t *testing.T) {
	t.Parallel()

	raw := bundleJSON(t, map[string][]Record{
		"projects": {{"name": "Fintrax"}},
		"tasks":    {{"title": "ship it"}},
		"loans":    {{"name": "car", "total_amount": 1200.5}},
	})
	got := map[string][]Record{}
	res, err := ImportCompleteBackup(context.Background(), strings.NewReader(raw), Importers{
		"projects": collectImporter(&got, "projects"),
		"tasks": func(context.Context, []Record) error {
			return errors.New("disk full")
		},
		"loans": collectImporter(&got, "loans"),
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.Imported["projects"])
	require.Equal(t, 1, res.Imported["loans"])
	_, hasTasks := res.Imported["tasks"]
	require.False(t, hasTasks)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "Failed to import tasks")
	require.Contains(t, res.Errors[0], "disk full")
}

func TestImportCompleteBackupAbsentCollectionsAreEmpty(t *testing.T) {
	t.Parallel()

	raw := bundleJSON(t, map[string][]Record{
		"savings": {{"source": "bank", "amount": 100}},
	})
	got := map[string][]Record{}
	importers := Importers{}
	for _, typ := range CollectionTypes {
		importers[typ] = collectImporter(&got, typ)
	}
	res, err := ImportCompleteBackup(context.Background(), strings.NewReader(raw), importers)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, map[string]int{"savings": 1}, res.Imported)
	require.Empty(t, res.Errors)
}

func TestImportIndividualCSV(t *testing.T) {
	t.Parallel()

	headers, err := HeadersFor(TypeTransactions)
	require.NoError(t, err)
	text := ToCSV([]Record{
		{"transaction_id": "t1", "name": "groceries", "amount": 42.5},
		{"transaction_id": "t2", "name": "", "amount": 10},
	}, headers)

	got := map[string][]Record{}
	res, err := ImportIndividualCSV(context.Background(), strings.NewReader(text), TypeTransactions,
		collectImporter(&got, TypeTransactions))
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 1, res.Imported[TypeTransactions])
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "transactions[1]")
	require.Equal(t, "groceries", got[TypeTransactions][0]["name"])
	// CSV values arrive as strings and still validate as numeric
	require.Equal(t, "42.5", got[TypeTransactions][0]["amount"])
}

func TestImportIndividualCSVZeroValidIsFailureResult(t *testing.T) {
	t.Parallel()

	headers, err := HeadersFor(TypeProjects)
	require.NoError(t, err)
	text := ToCSV([]Record{{"description": "nameless"}}, headers)

	res, err := ImportIndividualCSV(context.Background(), strings.NewReader(text), TypeProjects,
		func(context.Context, []Record) error { t.Fatal("importer must not run"); return nil })
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Empty(t, res.Imported)
	require.NotEmpty(t, res.Errors)
}

func TestImportIndividualCSVUnknownType(t *testing.T) {
	t.Parallel()

	_, err := ImportIndividualCSV(context.Background(), strings.NewReader("a\n"), "gadgets", nil)
	require.Error(t, err)
}

func TestValidateItemsRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typ   string
		rec   Record
		valid bool
	}{
		{TypeProjects, Record{"name": "p"}, true},
		{TypeProjects, Record{"name": "  "}, false},
		{TypeRoadmaps, Record{"name": "r"}, true},
		{TypeRoadmaps, Record{}, false},
		{TypeTasks, Record{"title": "t"}, true},
		{TypeTasks, Record{"title": ""}, false},
		{TypeTransactions, Record{"name": "x", "amount": 1.0}, true},
		{TypeTransactions, Record{"source": "y", "amount": "3.50"}, true},
		{TypeTransactions, Record{"name": "x", "amount": "lots"}, false},
		{TypeTransactions, Record{"amount": 5.0}, false},
		{TypeSavings, Record{"source": "bank", "amount": 9}, true},
		{TypeLoans, Record{"name": "car", "total_amount": 100.0}, true},
		{TypeLoans, Record{"name": "car"}, false},
		{TypeLoans, Record{"total_amount": 100.0}, false},
	}
	for _, tc := range cases {
		valid, errs := ValidateItems(tc.typ, []Record{tc.rec})
		if tc.valid {
			require.Len(t, valid, 1, "%s %v", tc.typ, tc.rec)
			require.Empty(t, errs)
		} else {
			require.Empty(t, valid, "%s %v", tc.typ, tc.rec)
			require.Len(t, errs, 1)
			require.Contains(t, errs[0], tc.typ+"[0]")
		}
	}
}
