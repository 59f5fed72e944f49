package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher pulls all live records of one collection.
type Fetcher func(ctx context.Context) ([]Record, error)

// Fetchers maps collection type to its fetcher.
type Fetchers map[string]Fetcher

// Saver receives the finished artifact. Abstracted so the delivery
// mechanism (a directory here, a browser download in the original surface)
// stays out of the orchestration path and tests can assert nothing was
// saved on failure.
type Saver interface {
	Save(filename, mime string, data []byte) error
}

// DirSaver writes artifacts into a directory, creating it if needed.
type DirSaver struct {
	Dir string
}

func (s DirSaver) Save(filename, _ string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir backup dir: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, filename), data, 0o644)
}

// Exporter builds backup artifacts from live data.
type Exporter struct {
	Fetchers  Fetchers
	Saver     Saver
	UserEmail string
	Now       func() time.Time // nil means time.Now
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now().UTC()
	}
	return time.Now().UTC()
}

// ExportCompleteBackup fetches every collection concurrently, assembles the
// bundle, and hands the pretty-printed JSON to the saver as
// fintrax-backup-YYYY-MM-DD.json. The fan-out fails fast: the first fetcher
// error cancels the rest and nothing is saved, so a backup file is either
// complete or absent. Two exports within the same second may collide on the
// filename; accepted limitation.
func (e *Exporter) ExportCompleteBackup(ctx context.Context) (string, error) {
	data := make(map[string][]Record, len(CollectionTypes))
	g, gctx := errgroup.WithContext(ctx)
	results := make([][]Record, len(CollectionTypes))
	for i, typ := range CollectionTypes {
		fetch := e.Fetchers[typ]
		if fetch == nil {
			continue
		}
		i, typ := i, typ
		g.Go(func() error {
			records, err := fetch(gctx)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", typ, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	for i, typ := range CollectionTypes {
		if e.Fetchers[typ] == nil {
			continue
		}
		if results[i] == nil {
			results[i] = []Record{}
		}
		data[typ] = results[i]
	}

	now := e.now()
	bundle := Bundle{
		Metadata: Metadata{
			ExportDate: now.Format(time.RFC3339),
			Version:    Version,
			UserEmail:  e.UserEmail,
		},
		Data: data,
	}
	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}
	filename := fmt.Sprintf("fintrax-backup-%s.json", now.Format("2006-01-02"))
	if err := e.Saver.Save(filename, "application/json", raw); err != nil {
		return "", fmt.Errorf("save backup: %w", err)
	}
	return filename, nil
}

// ExportIndividualCSV writes one collection as fintrax-<type>-YYYY-MM-DD.csv
// using that collection's fixed header list. Unknown types are an error.
func (e *Exporter) ExportIndividualCSV(typ string, records []Record) (string, error) {
	headers, err := HeadersFor(typ)
	if err != nil {
		return "", err
	}
	text := ToCSV(records, headers)
	filename := fmt.Sprintf("fintrax-%s-%s.csv", typ, e.now().Format("2006-01-02"))
	if err := e.Saver.Save(filename, "text/csv", []byte(text)); err != nil {
		return "", fmt.Errorf("save csv: %w", err)
	}
	return filename, nil
}
