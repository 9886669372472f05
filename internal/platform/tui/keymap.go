package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flood-escape/internal/core"
)

// holdWindow is how long a direction stays held after its last key event.
// Terminals only report presses, so auto-repeat keeps a held key alive.
const holdWindow = 150 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to game actions.
// Returns the actions (possibly none) and whether it's a quit request.
// Some keys carry two meanings: "a" moves left while playing and opens the
// about screen from the menu, so both actions are reported.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	case "w", "up":
		return []core.Action{core.ActionUp}, false
	case "s", "down":
		return []core.Action{core.ActionDown}, false
	case "a":
		return []core.Action{core.ActionLeft, core.ActionAbout}, false
	case "left":
		return []core.Action{core.ActionLeft}, false
	case "d", "right":
		return []core.Action{core.ActionRight}, false
	case "enter", " ":
		return []core.Action{core.ActionConfirm}, false
	case "i", "?":
		return []core.Action{core.ActionAbout}, false
	case "tab", "esc", "b":
		return []core.Action{core.ActionBack}, false
	}
	return nil, false
}

// IsDirection reports whether a is one of the four movement actions.
func IsDirection(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}

// HeldKeys turns discrete key presses into held directions.
type HeldKeys struct {
	until map[core.Action]time.Time
}

// NewHeldKeys creates an empty tracker.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{until: make(map[core.Action]time.Time)}
}

// Press marks a direction as held from now. Pressing a direction releases
// its opposite immediately.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	delete(h.until, opposite(a))
	h.until[a] = now.Add(holdWindow)
}

// Apply sets every direction still held at now on the frame and forgets
// expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.After(until) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Release forgets every held direction.
func (h *HeldKeys) Release() {
	clear(h.until)
}
