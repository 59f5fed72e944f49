package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ImportFunc persists the valid records of one collection. Supplied by the
// caller; failures are isolated per collection, never fatal to the batch.
type ImportFunc func(ctx context.Context, records []Record) error

// Importers maps collection type to its persistence function.
type Importers map[string]ImportFunc

// ImportResult is the complete picture of one import attempt. Success is
// true iff at least one record was imported; Errors is populated whenever
// any record or collection failed, independent of Success.
type ImportResult struct {
	Success  bool
	Message  string
	Imported map[string]int
	Errors   []string
}

func (r ImportResult) total() int {
	n := 0
	for _, c := range r.Imported {
		n += c
	}
	return n
}

// ImportCompleteBackup reads a JSON bundle and imports every collection it
// contains. Malformed JSON or a bundle missing its metadata or data section
// is a format error returned before any per-record processing. Collections
// are processed sequentially in the fixed order so persistence side effects
// stay ordered; within each collection every record is validated
// independently, the importer receives only the valid subset, and an
// importer failure is recorded without stopping the remaining collections.
func ImportCompleteBackup(ctx context.Context, r io.Reader, importers Importers) (ImportResult, error) {
	res := ImportResult{Imported: make(map[string]int)}

	raw, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read backup file: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return res, fmt.Errorf("invalid backup file: not valid JSON: %w", err)
	}
	if bundle.Metadata.ExportDate == "" || bundle.Metadata.Version == "" || bundle.Data == nil {
		return res, fmt.Errorf("invalid backup format: missing metadata or data section")
	}

	for _, typ := range CollectionTypes {
		items := bundle.Data[typ]
		if len(items) == 0 {
			continue
		}
		valid, errs := ValidateItems(typ, items)
		res.Errors = append(res.Errors, errs...)
		if len(valid) == 0 {
			continue
		}
		fn := importers[typ]
		if fn == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to import %s: no importer configured", typ))
			continue
		}
		if err := fn(ctx, valid); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Failed to import %s: %v", typ, err))
			continue
		}
		res.Imported[typ] = len(valid)
	}

	total := res.total()
	res.Success = total >= 1
	if res.Success {
		res.Message = fmt.Sprintf("Imported %d records", total)
	} else {
		res.Message = "No valid records found in backup"
	}
	return res, nil
}

// ImportIndividualCSV imports a single collection from CSV text. Zero valid
// rows is a failure result, not an error; only unreadable input or an
// unknown collection type is returned as an error.
func ImportIndividualCSV(ctx context.Context, r io.Reader, typ string, fn ImportFunc) (ImportResult, error) {
	res := ImportResult{Imported: make(map[string]int)}
	if !KnownType(typ) {
		return res, fmt.Errorf("unknown collection type %q", typ)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read csv file: %w", err)
	}
	records, err := FromCSV(string(raw))
	if err != nil {
		return res, fmt.Errorf("parse csv: %w", err)
	}

	valid, errs := ValidateItems(typ, records)
	res.Errors = append(res.Errors, errs...)
	if len(valid) == 0 {
		res.Message = fmt.Sprintf("No valid %s records found", typ)
		return res, nil
	}
	if fn == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Failed to import %s: no importer configured", typ))
		res.Message = fmt.Sprintf("No valid %s records found", typ)
		return res, nil
	}
	if err := fn(ctx, valid); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("Failed to import %s: %v", typ, err))
		res.Message = fmt.Sprintf("Failed to import %s records", typ)
		return res, nil
	}
	res.Imported[typ] = len(valid)
	res.Success = true
	res.Message = fmt.Sprintf("Imported %d %s records", len(valid), typ)
	return res, nil
}
