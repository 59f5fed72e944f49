package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchInvokesMatchingHandler(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	var got []string
	d.Bind(ScopeGlobal, Shortcut{ID: "quit", Key: "q"}, func(ev KeyEvent) {
		got = append(got, "quit:"+ev.Key)
	}, DefaultOptions())

	out := d.Dispatch(KeyEvent{Key: "q"}, ScopeGlobal, false)
	require.Equal(t, 1, out.Matched)
	require.True(t, out.SuppressDefault)
	require.Equal(t, []string{"quit:q"}, got)

	out = d.Dispatch(KeyEvent{Key: "q", Ctrl: true}, ScopeGlobal, false)
	require.Zero(t, out.Matched)
	require.False(t, out.SuppressDefault)
}

func TestDispatchIgnoresTypingExceptEscape(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	fired := 0
	d.Bind(ScopeGlobal, Shortcut{ID: "quit", Key: "q"}, func(KeyEvent) { fired++ }, DefaultOptions())
	d.Bind(ScopeGlobal, Shortcut{ID: "close", Key: "escape"}, func(KeyEvent) { fired++ }, DefaultOptions())

	out := d.Dispatch(KeyEvent{Key: "q"}, ScopeGlobal, true)
	require.Zero(t, out.Matched)
	require.Zero(t, fired)

	// escape must still close modals while a text input has focus
	out = d.Dispatch(KeyEvent{Key: "esc"}, ScopeGlobal, true)
	require.Equal(t, 1, out.Matched)
	require.Equal(t, 1, fired)
}

func TestDispatchDisabledBindingIgnored(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	fired := 0
	opts := DefaultOptions()
	opts.Enabled = false
	b := d.Bind(ScopeGlobal, Shortcut{ID: "quit", Key: "q"}, func(KeyEvent) { fired++ }, opts)

	require.Zero(t, d.Dispatch(KeyEvent{Key: "q"}, ScopeGlobal, false).Matched)
	require.Zero(t, fired)

	b.SetEnabled(true)
	require.Equal(t, 1, d.Dispatch(KeyEvent{Key: "q"}, ScopeGlobal, false).Matched)
	require.Equal(t, 1, fired)
}

func TestDispatchUsesLatestHandler(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	var got string
	b := d.Bind(ScopeGlobal, Shortcut{ID: "save", Key: "s", Ctrl: true}, func(KeyEvent) { got = "first" }, DefaultOptions())

	b.SetHandler(func(KeyEvent) { got = "second" })
	d.Dispatch(KeyEvent{Key: "s", Ctrl: true}, ScopeGlobal, false)
	require.Equal(t, "second", got)
}

func TestDispatchAmbiguousBindingsFireInRegistrationOrder(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	var order []string
	d.Bind("modal", Shortcut{ID: "a", Key: "x"}, func(KeyEvent) { order = append(order, "a") }, DefaultOptions())
	d.Bind("modal", Shortcut{ID: "b", Key: "x"}, func(KeyEvent) { order = append(order, "b") }, DefaultOptions())

	out := d.Dispatch(KeyEvent{Key: "x"}, "modal", false)
	require.Equal(t, 2, out.Matched)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestDispatchScopeFallback(t *testing.T) {
	t.Parallel()

	d := NewDispatcher()
	var order []string
	d.Bind(ScopeGlobal, Shortcut{ID: "g", Key: "q"}, func(KeyEvent) { order = append(order, "global") }, DefaultOptions())

	// no stop in the active scope: falls through to global
	noStop := DefaultOptions()
	noStop.StopPropagation = false
	d.Bind("modal", Shortcut{ID: "m", Key: "q"}, func(KeyEvent) { order = append(order, "modal") }, noStop)

	out := d.Dispatch(KeyEvent{Key: "q"}, "modal", false)
	require.Equal(t, 2, out.Matched)
	require.Equal(t, []string{"modal", "global"}, order)

	// with stop propagation the global binding never sees the event
	order = nil
	d2 := NewDispatcher()
	d2.Bind(ScopeGlobal, Shortcut{ID: "g", Key: "q"}, func(KeyEvent) { order = append(order, "global") }, DefaultOptions())
	d2.Bind("modal", Shortcut{ID: "m", Key: "q"}, func(KeyEvent) { order = append(order, "modal") }, DefaultOptions())
	out = d2.Dispatch(KeyEvent{Key: "q"}, "modal", false)
	require.Equal(t, 1, out.Matched)
	require.Equal(t, []string{"modal"}, order)
}

func TestBindAllWiresHandlersByID(t *testing.T) {
	t.Parallel()

	reg, err := NewRegistry(DefaultShortcuts())
	require.NoError(t, err)

	d := NewDispatcher()
	fired := map[string]int{}
	d.BindAll(ScopeGlobal, reg, map[string]Handler{
		"quit":          func(KeyEvent) { fired["quit"]++ },
		"export-backup": func(KeyEvent) { fired["export-backup"]++ },
	})

	d.Dispatch(KeyEvent{Key: "q"}, ScopeGlobal, false)
	d.Dispatch(KeyEvent{Key: "e"}, ScopeGlobal, false)
	d.Dispatch(KeyEvent{Key: "n"}, ScopeGlobal, false) // no handler supplied
	require.Equal(t, map[string]int{"quit": 1, "export-backup": 1}, fired)
}
