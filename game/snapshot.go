package game

import "gridsnake/game/types"

// Rect is a square block on the board, in pixels
type Rect struct {
	X, Y int
	Size int
}

// Snapshot is everything a host needs to draw one frame
type Snapshot struct {
	CellSize    int
	BoardWidth  int
	BoardHeight int

	Head      Rect
	Direction types.Direction
	Fruit     Rect
	Tail      []Rect // index 0 is next to the head

	Score     int
	BestScore int
	Games     int
	Message   string
	Round     string
}

// Snapshot copies the current positions. Pull it once per tick, after Tick returns.
func (g *Game) Snapshot() Snapshot {
	tail := make([]Rect, len(g.tail))
	for i, seg := range g.tail {
		tail[i] = Rect{X: seg.Pos.X, Y: seg.Pos.Y, Size: seg.Size}
	}

	best := g.Stats.BestScore()
	if g.score > best {
		best = g.score
	}

	return Snapshot{
		CellSize:    g.config.CellSize,
		BoardWidth:  g.config.BoardWidth,
		BoardHeight: g.config.BoardHeight,
		Head:        Rect{X: g.head.Pos.X, Y: g.head.Pos.Y, Size: g.head.Size},
		Direction:   g.head.Direction(),
		Fruit:       Rect{X: g.fruit.Pos.X, Y: g.fruit.Pos.Y, Size: g.fruit.Size},
		Tail:        tail,
		Score:       g.score,
		BestScore:   best,
		Games:       g.Stats.GamesPlayed(),
		Message:     g.message,
		Round:       g.Stats.CurrentRound(),
	}
}

// Cell returns the grid coordinates of r
func (s Snapshot) Cell(r Rect) types.Point {
	return types.Point{X: r.X / s.CellSize, Y: r.Y / s.CellSize}
}

// Cols and Rows give the board size in cells
func (s Snapshot) Cols() int { return s.BoardWidth / s.CellSize }
func (s Snapshot) Rows() int { return s.BoardHeight / s.CellSize }

// Contains reports whether the pixel position lies on the board
func (s Snapshot) Contains(p types.Point) bool {
	return p.X >= 0 && p.X < s.BoardWidth && p.Y >= 0 && p.Y < s.BoardHeight
}
