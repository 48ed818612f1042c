package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/game"
	"gridsnake/game/types"
)

const (
	borderPadding = 10 // Padding around game area
	statsHeight   = 40 // Strip below the board for score and messages
	// Blocks are drawn 2px smaller than a cell so neighbours stay distinct
	blockGap = 2
)

// WindowSize returns the window needed for the configured board
func WindowSize(cfg game.Config) (width, height int32) {
	return int32(cfg.BoardWidth + 2*borderPadding), int32(cfg.BoardHeight + 2*borderPadding + statsHeight)
}

type Renderer struct {
	offsetX   int32
	offsetY   int32
	fontSize  int32
	autopilot bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		offsetX:  borderPadding,
		offsetY:  borderPadding,
		fontSize: 20,
	}
}

// SetAutopilot toggles the autopilot marker in the stats strip
func (r *Renderer) SetAutopilot(on bool) {
	r.autopilot = on
}

// Draw renders one frame from the snapshot
func (r *Renderer) Draw(s game.Snapshot) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	boardW := int32(s.BoardWidth)
	boardH := int32(s.BoardHeight)

	// Draw grid background
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, boardW+2, boardH+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, boardW, boardH, rl.Black)

	r.drawBlock(s.Fruit, rl.Red)
	for _, seg := range s.Tail {
		if s.Contains(types.Point{X: seg.X, Y: seg.Y}) {
			r.drawBlock(seg, rl.Green)
		}
	}
	if s.Contains(types.Point{X: s.Head.X, Y: s.Head.Y}) {
		r.drawBlock(s.Head, rl.Lime)
		r.drawDirection(s.Head, s.Direction)
	}

	r.drawStats(s)
}

func (r *Renderer) drawBlock(b game.Rect, color rl.Color) {
	size := int32(b.Size - blockGap)
	rl.DrawRectangle(r.offsetX+int32(b.X)+1, r.offsetY+int32(b.Y)+1, size, size, color)
}

// drawDirection draws a triangle on the head pointing where it is going
func (r *Renderer) drawDirection(head game.Rect, d types.Direction) {
	headX := float32(r.offsetX + int32(head.X))
	headY := float32(r.offsetY + int32(head.Y))
	cell := float32(head.Size)
	half := cell / 2

	// Vertices in counter-clockwise order, as raylib expects
	switch d {
	case types.Right:
		rl.DrawTriangle(
			rl.Vector2{X: headX + cell, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX + half, Y: headY + cell},
			rl.Yellow)
	case types.Left:
		rl.DrawTriangle(
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + half, Y: headY + cell},
			rl.Vector2{X: headX + half, Y: headY},
			rl.Yellow)
	case types.Down:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY + cell},
			rl.Vector2{X: headX + cell, Y: headY + half},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Yellow)
	case types.Up:
		rl.DrawTriangle(
			rl.Vector2{X: headX + half, Y: headY},
			rl.Vector2{X: headX, Y: headY + half},
			rl.Vector2{X: headX + cell, Y: headY + half},
			rl.Yellow)
	}
}

func (r *Renderer) drawStats(s game.Snapshot) {
	y := r.offsetY + int32(s.BoardHeight) + borderPadding
	x := r.offsetX
	spacing := int32(160)

	rl.DrawText(fmt.Sprintf("Score: %d", s.Score), x, y, r.fontSize, rl.White)
	x += spacing
	rl.DrawText(fmt.Sprintf("Best: %d", s.BestScore), x, y, r.fontSize, rl.Green)
	x += spacing
	rl.DrawText(fmt.Sprintf("Games: %d", s.Games), x, y, r.fontSize, rl.Purple)
	x += spacing
	if r.autopilot {
		rl.DrawText("AUTO", x, y, r.fontSize, rl.Yellow)
	}

	// Game over text centered on the board
	if s.Message != "" {
		textWidth := rl.MeasureText(s.Message, r.fontSize)
		rl.DrawText(s.Message,
			r.offsetX+(int32(s.BoardWidth)-textWidth)/2,
			r.offsetY+int32(s.BoardHeight)/2,
			r.fontSize, rl.Red)
	}
}
