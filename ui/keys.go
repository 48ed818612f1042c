package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game/types"
)

// Input is what the window host should do after draining the key queue
type Input struct {
	Commands        []types.Command
	ToggleAutopilot bool
	Quit            bool
}

// PollInput drains every key pressed since the last frame, in order
func PollInput() Input {
	var in Input
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch key {
		case rl.KeyW, rl.KeyUp:
			in.Commands = append(in.Commands, types.CommandUp)
		case rl.KeyS, rl.KeyDown:
			in.Commands = append(in.Commands, types.CommandDown)
		case rl.KeyA, rl.KeyLeft:
			in.Commands = append(in.Commands, types.CommandLeft)
		case rl.KeyD, rl.KeyRight:
			in.Commands = append(in.Commands, types.CommandRight)
		case rl.KeyR:
			in.Commands = append(in.Commands, types.CommandRestart)
		case rl.KeyP:
			in.ToggleAutopilot = !in.ToggleAutopilot
		case rl.KeyQ:
			in.Quit = true
		}
	}
	return in
}
