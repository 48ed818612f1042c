package entity

import "gridsnake/game/types"

// Head is the player-controlled front of the snake
type Head struct {
	Pos         types.Point
	Size        int
	Orientation types.Point // one cell step, never zero
}

// Reset puts the head at pos facing right
func (h *Head) Reset(pos types.Point, cellSize int) {
	h.Pos = pos
	h.Size = cellSize
	h.Orientation = types.Right.ToPoint().Scale(cellSize)
}

// Move advances the head one step along its orientation
func (h *Head) Move() {
	h.Pos = h.Pos.Add(h.Orientation)
}

// SetDirection changes the orientation used by the next Move.
// None is ignored so the orientation never becomes zero.
func (h *Head) SetDirection(d types.Direction) {
	if d == types.None {
		return
	}
	h.Orientation = d.ToPoint().Scale(h.Size)
}

func (h *Head) Direction() types.Direction {
	return types.DirectionOf(h.Orientation)
}

// TailSegment is one body block trailing the head
type TailSegment struct {
	Pos  types.Point
	Size int
}

func NewTailSegment(pos types.Point, cellSize int) TailSegment {
	return TailSegment{Pos: pos, Size: cellSize}
}

func (t *TailSegment) Move(pos types.Point) {
	t.Pos = pos
}

// Fruit is relocated every time it is eaten
type Fruit struct {
	Pos  types.Point
	Size int
}

func (f *Fruit) Move(pos types.Point) {
	f.Pos = pos
}
