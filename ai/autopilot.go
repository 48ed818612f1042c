package ai

import (
	"gridsnake/game"
	"gridsnake/game/types"
)

// Autopilot steers the snake towards the fruit for demo mode. It only
// ever talks to the game through commands, like a player would.
type Autopilot struct{}

func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

// option is a candidate move with its evaluation
type option struct {
	dir      types.Direction
	safe     bool
	foodDist int
	exits    int
}

// Next picks between going straight, left or right. Unsafe moves (off the
// board or into the body) are discarded, then the move closest to the fruit
// wins, with ties going to the move that leaves more free neighbours.
// It returns CommandNone when the current heading is already best or when
// every move is fatal.
func (a *Autopilot) Next(s game.Snapshot) types.Command {
	blocked := blockedCells(s)
	head := types.Point{X: s.Head.X, Y: s.Head.Y}
	fruit := types.Point{X: s.Fruit.X, Y: s.Fruit.Y}

	candidates := []types.Direction{s.Direction, s.Direction.TurnLeft(), s.Direction.TurnRight()}
	var best *option
	for _, d := range candidates {
		opt := evaluate(s, blocked, head, fruit, d)
		if !opt.safe {
			continue
		}
		if best == nil || better(opt, *best) {
			o := opt
			best = &o
		}
	}

	if best == nil || best.dir == s.Direction {
		return types.CommandNone
	}
	return types.CommandFor(best.dir)
}

func better(a, b option) bool {
	if a.foodDist != b.foodDist {
		return a.foodDist < b.foodDist
	}
	return a.exits > b.exits
}

func evaluate(s game.Snapshot, blocked map[types.Point]bool, head, fruit types.Point, d types.Direction) option {
	next := head.Add(d.ToPoint().Scale(s.CellSize))
	opt := option{dir: d}
	if !s.Contains(next) || blocked[next] {
		return opt
	}
	opt.safe = true
	opt.foodDist = manhattan(next, fruit) / s.CellSize

	for _, nd := range []types.Direction{types.Up, types.Right, types.Down, types.Left} {
		n := next.Add(nd.ToPoint().Scale(s.CellSize))
		if n != head && s.Contains(n) && !blocked[n] {
			opt.exits++
		}
	}
	return opt
}

// blockedCells is the body as it will be once the next tick has moved the
// tail: every block except the free end, plus the cell the head leaves.
func blockedCells(s game.Snapshot) map[types.Point]bool {
	blocked := make(map[types.Point]bool, len(s.Tail))
	for i := 0; i < len(s.Tail)-1; i++ {
		blocked[types.Point{X: s.Tail[i].X, Y: s.Tail[i].Y}] = true
	}
	blocked[types.Point{X: s.Head.X, Y: s.Head.Y}] = true
	return blocked
}

func manhattan(p1, p2 types.Point) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
