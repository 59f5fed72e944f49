package keymap

import (
	"runtime"
	"strings"
)

// PlatformInfo tells the formatter which modifier rendering to use. It is
// injected rather than read from ambient state so both branches can be
// exercised deterministically.
type PlatformInfo interface {
	IsMac() bool
}

// Platform is the concrete PlatformInfo carrying a platform name string.
type Platform struct {
	Name string
}

var macNames = []string{"Mac", "iPhone", "iPod", "iPad"}

// IsMac reports whether the platform name identifies the macOS family.
func (p Platform) IsMac() bool {
	for _, n := range macNames {
		if strings.Contains(p.Name, n) {
			return true
		}
	}
	return false
}

// DetectPlatform derives the platform from the running OS.
func DetectPlatform() Platform {
	if runtime.GOOS == "darwin" {
		return Platform{Name: "MacIntel"}
	}
	return Platform{Name: runtime.GOOS}
}

// Format renders a shortcut for display. macOS uses the modifier glyphs
// concatenated directly; everything else uses literal labels joined with
// "+". Modifier order is always ctrl, alt, shift, meta, then the key, and
// the key token is uppercased only when it is a single character.
func Format(def Shortcut, p PlatformInfo) string {
	key := def.Key
	if len(key) == 1 {
		key = strings.ToUpper(key)
	}
	if p != nil && p.IsMac() {
		var b strings.Builder
		if def.Ctrl {
			b.WriteString("⌃")
		}
		if def.Alt {
			b.WriteString("⌥")
		}
		if def.Shift {
			b.WriteString("⇧")
		}
		if def.Meta {
			b.WriteString("⌘")
		}
		b.WriteString(key)
		return b.String()
	}
	parts := make([]string, 0, 5)
	if def.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if def.Alt {
		parts = append(parts, "Alt")
	}
	if def.Shift {
		parts = append(parts, "Shift")
	}
	if def.Meta {
		parts = append(parts, "Win")
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}
