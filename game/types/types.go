package types

import "fmt"

// Point is a position on the board in pixels, or a cell coordinate when
// working with the occupancy grid.
type Point struct {
	X, Y int
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale multiplies both coordinates by k
func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Grid represents the board dimensions in cells
type Grid struct {
	Width  int
	Height int
}

// Direction is one of the four cardinal directions
type Direction int

const (
	None Direction = iota
	Up
	Right
	Down
	Left
)

// ToPoint converts a Direction into a unit step. Y grows downwards.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 0, Y: 0}
	}
}

// TurnLeft returns the direction after a 90° counter-clockwise turn
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Right:
		return Up
	case Down:
		return Right
	case Left:
		return Down
	default:
		return d
	}
}

// TurnRight returns the direction after a 90° clockwise turn
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	default:
		return d
	}
}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	return d.TurnLeft().TurnLeft()
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// DirectionOf interprets a step vector of any length as a cardinal direction
func DirectionOf(step Point) Direction {
	switch {
	case step.Y < 0:
		return Up
	case step.X > 0:
		return Right
	case step.Y > 0:
		return Down
	case step.X < 0:
		return Left
	default:
		return None
	}
}

// Command is an already-decoded input delivered by a host shell
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandDown
	CommandLeft
	CommandRight
	CommandRestart
)

// Direction reports the direction a movement command asks for.
// ok is false for restart and unknown commands.
func (c Command) Direction() (d Direction, ok bool) {
	switch c {
	case CommandUp:
		return Up, true
	case CommandDown:
		return Down, true
	case CommandLeft:
		return Left, true
	case CommandRight:
		return Right, true
	default:
		return None, false
	}
}

// CommandFor returns the movement command steering towards d
func CommandFor(d Direction) Command {
	switch d {
	case Up:
		return CommandUp
	case Down:
		return CommandDown
	case Left:
		return CommandLeft
	case Right:
		return CommandRight
	default:
		return CommandNone
	}
}

func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandRestart:
		return "restart"
	case CommandNone:
		return "none"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}
