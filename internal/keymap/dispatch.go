package keymap

// ScopeGlobal is the fallback scope consulted after the active scope.
const ScopeGlobal = "global"

// Handler receives the raw event that matched.
type Handler func(ev KeyEvent)

// Options controls one registration. All three flags default to true via
// DefaultOptions.
type Options struct {
	Enabled         bool
	SuppressDefault bool
	StopPropagation bool
}

// DefaultOptions returns the standard registration options.
func DefaultOptions() Options {
	return Options{Enabled: true, SuppressDefault: true, StopPropagation: true}
}

// Binding is one live (shortcut, handler) registration. The handler lives in
// a mutable cell so callers can swap the callback between events without
// tearing down and re-registering the binding; Dispatch always invokes the
// most recent handler.
type Binding struct {
	Shortcut Shortcut
	Options  Options
	handler  Handler
}

// SetHandler replaces the callback invoked on match.
func (b *Binding) SetHandler(h Handler) { b.handler = h }

// SetEnabled toggles the registration without removing it.
func (b *Binding) SetEnabled(on bool) { b.Options.Enabled = on }

// Dispatcher routes key events to registered bindings. Bindings are grouped
// by scope; the active scope is tried first and, unless a matching binding
// asked to stop propagation, the global scope is tried after it. Dispatch is
// called from the single TUI update goroutine, so no locking is needed.
type Dispatcher struct {
	byScope map[string][]*Binding
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{byScope: make(map[string][]*Binding)}
}

// Bind registers a shortcut in a scope and returns the live binding.
func (d *Dispatcher) Bind(scope string, def Shortcut, h Handler, opts Options) *Binding {
	b := &Binding{Shortcut: def, Options: opts, handler: h}
	d.byScope[scope] = append(d.byScope[scope], b)
	return b
}

// BindAll registers every shortcut from the registry that has an entry in
// the handlers map, using default options.
func (d *Dispatcher) BindAll(scope string, reg *Registry, handlers map[string]Handler) {
	for _, s := range reg.Shortcuts() {
		h, ok := handlers[s.ID]
		if !ok {
			continue
		}
		d.Bind(scope, s, h, DefaultOptions())
	}
}

// Outcome summarises one dispatch pass.
type Outcome struct {
	Matched         int
	SuppressDefault bool
}

// Dispatch evaluates the event against the active scope and then, unless
// propagation was stopped by a matching binding, the global scope. When
// typing is true the event originated while a text input was focused; it is
// ignored entirely unless the key is escape, which must always be able to
// close a modal. Every matching enabled binding fires in registration
// order; an ambiguous table means multiple callbacks run, which the registry
// treats as a configuration defect rather than a feature.
func (d *Dispatcher) Dispatch(ev KeyEvent, scope string, typing bool) Outcome {
	var out Outcome
	if typing && !IsEscape(ev.Key) {
		return out
	}
	stop := d.dispatchScope(ev, scope, &out)
	if !stop && scope != ScopeGlobal {
		d.dispatchScope(ev, ScopeGlobal, &out)
	}
	return out
}

func (d *Dispatcher) dispatchScope(ev KeyEvent, scope string, out *Outcome) (stop bool) {
	for _, b := range d.byScope[scope] {
		if !b.Options.Enabled || b.Shortcut.Disabled {
			continue
		}
		if !Matches(ev, b.Shortcut) {
			continue
		}
		out.Matched++
		if b.Options.SuppressDefault {
			out.SuppressDefault = true
		}
		if b.Options.StopPropagation {
			stop = true
		}
		if b.handler != nil {
			b.handler(ev)
		}
	}
	return stop
}
