package keymap

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is a physical key press: the key token plus four modifier flags.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// ParseKey decodes the "ctrl+alt+x" string form emitted by the terminal
// runtime into a KeyEvent. Unrecognised segments before the last one are
// treated as part of the key (e.g. "shift+tab" yields Key "tab").
func ParseKey(s string) KeyEvent {
	var ev KeyEvent
	s = strings.TrimSpace(s)
	if s == "" {
		return ev
	}
	parts := strings.Split(s, "+")
	for i, p := range parts {
		last := i == len(parts)-1
		switch strings.ToLower(p) {
		case "ctrl", "control":
			if !last {
				ev.Ctrl = true
				continue
			}
		case "alt", "option":
			if !last {
				ev.Alt = true
				continue
			}
		case "shift":
			if !last {
				ev.Shift = true
				continue
			}
		case "meta", "cmd", "super", "win":
			if !last {
				ev.Meta = true
				continue
			}
		}
		ev.Key = strings.Join(parts[i:], "+")
		break
	}
	return ev
}

// ParseKeyMsg adapts a Bubble Tea key message to a KeyEvent.
func ParseKeyMsg(msg tea.KeyMsg) KeyEvent {
	return ParseKey(msg.String())
}

// Matches reports whether the event satisfies the shortcut: keys compare
// case-insensitively and every modifier flag must be pairwise equal. A
// modifier missing from the shortcut requires the event's flag to be false
// too; this is strict equality, not a subset check.
func Matches(ev KeyEvent, def Shortcut) bool {
	if !strings.EqualFold(normalizeKey(ev.Key), normalizeKey(def.Key)) {
		return false
	}
	return ev.Ctrl == def.Ctrl &&
		ev.Alt == def.Alt &&
		ev.Shift == def.Shift &&
		ev.Meta == def.Meta
}

// IsEscape reports whether the key token is the escape key in either the
// terminal ("esc") or browser ("Escape") spelling.
func IsEscape(key string) bool {
	return strings.EqualFold(key, "esc") || strings.EqualFold(key, "escape")
}

func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if k == " " {
		return "space"
	}
	if strings.EqualFold(k, "escape") {
		return "esc"
	}
	if strings.EqualFold(k, "return") {
		return "enter"
	}
	return k
}
