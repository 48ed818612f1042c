package game

import (
	"time"

	"github.com/pkg/errors"

	"gridsnake/game/types"
)

// Defaults match the classic 800x800 board with 40px blocks
const (
	DefaultCellSize     = 40
	DefaultBoardWidth   = 800
	DefaultBoardHeight  = 800
	DefaultTickInterval = 100 * time.Millisecond

	MinCellSize   = 3
	MinBoardCells = 3
)

var (
	ErrCellTooSmall    = errors.New("cell size should be at least 3 px")
	ErrBoardTooSmall   = errors.New("board must be at least 3 times larger than cell size")
	ErrBoardMisaligned = errors.New("board size must be a multiple of cell size")
	ErrTickInterval    = errors.New("tick interval must be positive")
)

// Config is fixed at startup and validated once
type Config struct {
	CellSize     int
	BoardWidth   int
	BoardHeight  int
	TickInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		CellSize:     DefaultCellSize,
		BoardWidth:   DefaultBoardWidth,
		BoardHeight:  DefaultBoardHeight,
		TickInterval: DefaultTickInterval,
	}
}

// Validate reports the first violated constraint. The returned error wraps
// one of the Err* sentinels; use errors.Cause to match it.
func (c Config) Validate() error {
	if c.CellSize < MinCellSize {
		return errors.Wrapf(ErrCellTooSmall, "cell size %d", c.CellSize)
	}
	if c.BoardWidth < MinBoardCells*c.CellSize || c.BoardHeight < MinBoardCells*c.CellSize {
		return errors.Wrapf(ErrBoardTooSmall, "board %dx%d, cell %d", c.BoardWidth, c.BoardHeight, c.CellSize)
	}
	if c.BoardWidth%c.CellSize != 0 || c.BoardHeight%c.CellSize != 0 {
		return errors.Wrapf(ErrBoardMisaligned, "board %dx%d, cell %d", c.BoardWidth, c.BoardHeight, c.CellSize)
	}
	if c.TickInterval <= 0 {
		return errors.Wrapf(ErrTickInterval, "tick interval %s", c.TickInterval)
	}
	return nil
}

// Grid returns the board size in cells
func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.BoardWidth / c.CellSize, Height: c.BoardHeight / c.CellSize}
}
