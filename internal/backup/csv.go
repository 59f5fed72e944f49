package backup

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Per-collection header lists. Order is fixed and is the round-trip
// contract; changing it breaks compatibility with previously exported files.
var csvHeaders = map[string][]string{
	TypeProjects: {"project_id", "name", "description", "status", "start_date", "end_date", "created_at", "updated_at"},
	TypeTasks:    {"task_id", "title", "description", "priority", "status", "due_days", "start_date", "end_date", "project_id", "roadmap_id", "created_at", "updated_at"},
	TypeTransactions: {"transaction_id", "name", "amount", "category", "transaction_type", "date", "notes", "created_at", "updated_at"},
	TypeSavings:      {"savings_id", "source", "amount", "interest_rate", "maturity_date", "notes", "created_at", "updated_at"},
	TypeLoans:        {"loan_id", "name", "total_amount", "interest_rate", "emi", "duration_months", "start_date", "created_at", "updated_at"},
	TypeRoadmaps:     {"roadmap_id", "name", "description", "project_id", "status", "created_at", "updated_at"},
}

// HeadersFor returns the fixed header list for a collection type.
func HeadersFor(typ string) ([]string, error) {
	h, ok := csvHeaders[typ]
	if !ok {
		return nil, fmt.Errorf("unknown collection type %q", typ)
	}
	return h, nil
}

// ToCSV serialises records against the given header list. Headers are
// assumed safe and written verbatim. Cell rules: nil values become the
// empty string; maps and slices are JSON-stringified and always quoted;
// strings containing a comma, quote, or newline are quoted with internal
// quotes doubled; everything else is written in its plain string form.
// An empty record set yields exactly the header line plus a newline.
//
// encoding/csv is deliberately not used here: it only quotes cells that
// contain delimiters, while this format requires JSON-stringified cells to
// always carry quotes.
func ToCSV(records []Record, headers []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteString("\n")
	for _, rec := range records {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = formatCell(rec[h])
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if strings.ContainsAny(val, ",\"\n") {
			return quoteCell(val)
		}
		return val
	case map[string]any, []any, []string, []Record:
		raw, err := json.Marshal(val)
		if err != nil {
			return quoteCell(fmt.Sprint(val))
		}
		return quoteCell(string(raw))
	default:
		return fmt.Sprint(val)
	}
}

func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FromCSV parses CSV text produced by ToCSV back into records. The first
// non-blank row is the header list; each following row is zip-mapped
// against it, with cells beyond the header count dropped and missing cells
// simply absent from the record. All values come back as strings.
//
// The reader understands the writer's quoting (doubled quotes, embedded
// commas and newlines inside quoted cells), so a write/read round trip is
// symmetric. The source this format descends from only split on commas when
// reading; that asymmetry was resolved here in favour of a correct parse.
func FromCSV(text string) ([]Record, error) {
	rows, err := parseRows(text)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv: no header row")
	}
	headers := rows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			rec[headers[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseRows scans the whole text with a small state machine so quoted cells
// can contain commas, doubled quotes, and newlines. Blank rows are skipped.
func parseRows(text string) ([][]string, error) {
	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false
	cellQuoted := false

	flushCell := func() {
		row = append(row, cell.String())
		cell.Reset()
		cellQuoted = false
	}
	flushRow := func() {
		flushCell()
		blank := len(row) == 1 && strings.TrimSpace(row[0]) == ""
		if !blank {
			rows = append(rows, row)
		}
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cell.WriteRune('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			cell.WriteRune(c)
			continue
		}
		switch c {
		case '"':
			if cell.Len() == 0 && !cellQuoted {
				inQuotes = true
				cellQuoted = true
				continue
			}
			cell.WriteRune(c)
		case ',':
			flushCell()
		case '\r':
			// tolerated, consumed with the following newline
		case '\n':
			flushRow()
		default:
			cell.WriteRune(c)
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("csv: unterminated quoted cell")
	}
	if cell.Len() > 0 || len(row) > 0 {
		flushRow()
	}
	return rows, nil
}
