package keymap

import (
	"fmt"
	"strings"
)

// Category buckets shortcuts for the help overlay.
type Category string

const (
	CategoryNavigation Category = "navigation"
	CategoryActions    Category = "actions"
	CategoryViews      Category = "views"
	CategoryModals     Category = "modals"
	CategoryGeneral    Category = "general"
)

// categoryOrder is the fixed display order for grouped shortcuts.
var categoryOrder = []Category{
	CategoryNavigation,
	CategoryActions,
	CategoryViews,
	CategoryModals,
	CategoryGeneral,
}

// Label returns the display heading for a category.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

func knownCategory(c Category) bool {
	for _, k := range categoryOrder {
		if c == k {
			return true
		}
	}
	return false
}

// Shortcut is one static keyboard combination. The zero value of Disabled
// means the shortcut participates in matching and conflict checks.
type Shortcut struct {
	ID          string
	Key         string
	Ctrl        bool
	Alt         bool
	Shift       bool
	Meta        bool
	Description string
	Category    Category
	Disabled    bool
}

// combo is the identity tuple used for conflict detection.
func (s Shortcut) combo() string {
	var b strings.Builder
	if s.Ctrl {
		b.WriteString("ctrl+")
	}
	if s.Alt {
		b.WriteString("alt+")
	}
	if s.Shift {
		b.WriteString("shift+")
	}
	if s.Meta {
		b.WriteString("meta+")
	}
	b.WriteString(strings.ToLower(s.Key))
	return b.String()
}

// Registry holds the canonical shortcut table. It is built once at startup
// and never mutated afterwards, so concurrent reads need no locking.
type Registry struct {
	shortcuts []Shortcut
	byID      map[string]*Shortcut
}

// NewRegistry validates and indexes the table. Unlike the grouping helper,
// construction is strict: an unknown category or two enabled shortcuts
// sharing the same key+modifier tuple reject the whole table.
func NewRegistry(defs []Shortcut) (*Registry, error) {
	r := &Registry{
		shortcuts: make([]Shortcut, 0, len(defs)),
		byID:      make(map[string]*Shortcut, len(defs)),
	}
	seen := make(map[string]string)
	for _, d := range defs {
		if strings.TrimSpace(d.Key) == "" {
			return nil, fmt.Errorf("shortcut %q: key is required", d.ID)
		}
		if !knownCategory(d.Category) {
			return nil, fmt.Errorf("shortcut %q: unknown category %q", d.ID, d.Category)
		}
		if !d.Disabled {
			c := d.combo()
			if prev, ok := seen[c]; ok {
				return nil, fmt.Errorf("shortcut conflict: %q used by both %q and %q", c, prev, d.ID)
			}
			seen[c] = d.ID
		}
		r.shortcuts = append(r.shortcuts, d)
	}
	for i := range r.shortcuts {
		s := &r.shortcuts[i]
		if s.ID == "" {
			continue
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("shortcut id %q declared twice", s.ID)
		}
		r.byID[s.ID] = s
	}
	return r, nil
}

// Shortcuts returns a copy of the table.
func (r *Registry) Shortcuts() []Shortcut {
	out := make([]Shortcut, len(r.shortcuts))
	copy(out, r.shortcuts)
	return out
}

// ByID returns the shortcut with the given id, or nil.
func (r *Registry) ByID(id string) *Shortcut {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// Override rebinds one shortcut id to a different key combination.
type Override struct {
	ID    string
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// ApplyOverrides rebinds shortcuts by id and re-runs the conflict scan over
// the whole table, so an override cannot smuggle in an ambiguous combo.
func (r *Registry) ApplyOverrides(items []Override) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	seenID := make(map[string]bool)
	for _, o := range items {
		id := strings.TrimSpace(o.ID)
		if id == "" {
			return fmt.Errorf("shortcut override: id is required")
		}
		if strings.TrimSpace(o.Key) == "" {
			return fmt.Errorf("shortcut override %q: key is required", id)
		}
		if seenID[id] {
			return fmt.Errorf("shortcut override %q: duplicated override entry", id)
		}
		seenID[id] = true
		target := r.byID[id]
		if target == nil {
			return fmt.Errorf("shortcut override %q: unknown shortcut id", id)
		}
		target.Key = o.Key
		target.Ctrl = o.Ctrl
		target.Alt = o.Alt
		target.Shift = o.Shift
		target.Meta = o.Meta
	}
	seen := make(map[string]string)
	for _, s := range r.shortcuts {
		if s.Disabled {
			continue
		}
		c := s.combo()
		if prev, ok := seen[c]; ok {
			return fmt.Errorf("shortcut override conflict: %q used by both %q and %q", c, prev, s.ID)
		}
		seen[c] = s.ID
	}
	return nil
}

// Group is one category heading plus its shortcuts.
type Group struct {
	Category  Category
	Shortcuts []Shortcut
}

// GroupByCategory returns the categories in fixed order, each with the
// shortcuts that belong to it. Empty categories are omitted entirely, and
// shortcuts with a category outside the known five are silently dropped:
// grouping is a display path and must not fail on a bad definition.
func GroupByCategory(defs []Shortcut) []Group {
	out := make([]Group, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		var g Group
		for _, d := range defs {
			if d.Category == c {
				g.Shortcuts = append(g.Shortcuts, d)
			}
		}
		if len(g.Shortcuts) == 0 {
			continue
		}
		g.Category = c
		out = append(out, g)
	}
	return out
}
