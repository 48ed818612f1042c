package term

import (
	"github.com/gdamore/tcell/v2"

	"gridsnake/game/types"
)

// Action is what a key press asks the host to do
type Action int

const (
	ActionNone Action = iota
	ActionCommand
	ActionToggleAutopilot
	ActionQuit
)

// DecodeKey maps a terminal key to a game command. wasd and the arrow keys
// steer, r restarts, p toggles the autopilot, q, Esc and Ctrl-C quit.
func DecodeKey(ev *tcell.EventKey) (Action, types.Command) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionCommand, types.CommandUp
	case tcell.KeyDown:
		return ActionCommand, types.CommandDown
	case tcell.KeyLeft:
		return ActionCommand, types.CommandLeft
	case tcell.KeyRight:
		return ActionCommand, types.CommandRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, types.CommandNone
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ActionCommand, types.CommandUp
		case 's', 'S':
			return ActionCommand, types.CommandDown
		case 'a', 'A':
			return ActionCommand, types.CommandLeft
		case 'd', 'D':
			return ActionCommand, types.CommandRight
		case 'r', 'R':
			return ActionCommand, types.CommandRestart
		case 'p', 'P':
			return ActionToggleAutopilot, types.CommandNone
		case 'q', 'Q':
			return ActionQuit, types.CommandNone
		}
	}
	return ActionNone, types.CommandNone
}
