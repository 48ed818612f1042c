package game

import (
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

const (
	initialTailLength = 2
	// Random rolls per board cell before SpawnFruit falls back to a full scan
	fruitRollsPerCell = 4
	// Ticks the game-over message stays visible after a restart
	messageTicks = 10
)

// GameOverReason says why a round ended
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonBoundary
	ReasonSelfCollision
	ReasonRestart
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonBoundary:
		return "left the board"
	case ReasonSelfCollision:
		return "bit its own tail"
	case ReasonRestart:
		return "restarted"
	default:
		return "none"
	}
}

// TickResult is the outcome of a single Tick
type TickResult struct {
	Ate      bool
	GameOver bool
	Reason   GameOverReason
}

// Game owns the whole board state. It is not safe for concurrent use:
// the host drives Tick and HandleCommand from one goroutine.
type Game struct {
	Stats *SessionStats

	config Config
	grid   *OccupancyGrid
	head   entity.Head
	fruit  entity.Fruit
	tail   []entity.TailSegment
	score  int

	message    string
	messageTTL int

	rng    *rand.Rand
	logger *log.Logger
	now    func() time.Time
}

type Option func(*Game)

// WithSeed makes fruit placement deterministic
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets where round transitions are logged
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithClock overrides the time source used for round records
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// NewGame validates cfg and returns a game in its initial state
func NewGame(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := cfg.Grid()
	g := &Game{
		Stats:  NewSessionStats(),
		config: cfg,
		grid:   NewOccupancyGrid(grid.Width, grid.Height),
		tail:   make([]entity.TailSegment, 0, initialTailLength),
		fruit:  entity.Fruit{Size: cfg.CellSize},
		logger: log.New(io.Discard, "", 0),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	g.restart()
	return g, nil
}

// restart puts the game back in its initial state. It is both the
// initialization routine and the recovery after a collision; hosts go
// through HandleCommand so the running round gets recorded first.
func (g *Game) restart() {
	cs := g.config.CellSize
	g.grid.Clear()

	g.head.Reset(g.center(), cs)
	g.score = 0

	g.tail = g.tail[:0]
	for i := 1; i <= initialTailLength; i++ {
		pos := g.head.Pos.Add(types.Point{X: -i * cs})
		g.tail = append(g.tail, entity.NewTailSegment(pos, cs))
		// On a board three cells wide the free end starts left of the edge
		if g.inBounds(pos) {
			g.grid.Set(g.cellOf(pos), true)
		}
	}

	g.SpawnFruit()

	id := g.Stats.StartRound(g.now())
	g.logger.Printf("round %s started", id)
}

// center is the grid-aligned cell nearest the middle of the board
func (g *Game) center() types.Point {
	cs := g.config.CellSize
	halfW := g.config.BoardWidth / 2
	halfH := g.config.BoardHeight / 2
	return types.Point{X: halfW - halfW%cs, Y: halfH - halfH%cs}
}

// cellOf converts an in-bounds pixel position to grid coordinates.
// Callers check inBounds first, the grid panics on anything else.
func (g *Game) cellOf(p types.Point) types.Point {
	return types.Point{X: p.X / g.config.CellSize, Y: p.Y / g.config.CellSize}
}

func (g *Game) inBounds(p types.Point) bool {
	return p.X >= 0 && p.X < g.config.BoardWidth && p.Y >= 0 && p.Y < g.config.BoardHeight
}

// Tick advances the game by one step. The boundary and self-collision
// checks look at the position reached by the previous tick, so a fatal
// move is only detected (and the game restarted) one tick later.
func (g *Game) Tick(dt time.Duration) TickResult {
	if !g.inBounds(g.head.Pos) {
		return g.gameOver(ReasonBoundary)
	}
	if g.grid.Get(g.cellOf(g.head.Pos)) {
		return g.gameOver(ReasonSelfCollision)
	}

	if g.messageTTL > 0 {
		g.messageTTL--
		if g.messageTTL == 0 {
			g.message = ""
		}
	}

	g.advanceTail()
	g.head.Move()

	if g.head.Pos == g.fruit.Pos {
		g.score++
		// The new block sits on the head until the next advanceTail
		// shifts it into place at the free end.
		g.tail = append(g.tail, entity.NewTailSegment(g.head.Pos, g.config.CellSize))
		g.SpawnFruit()
		return TickResult{Ate: true}
	}
	return TickResult{}
}

// advanceTail frees the last block's cell, shifts every block into its
// neighbour's old place and moves the first block onto the head.
func (g *Game) advanceTail() {
	last := len(g.tail) - 1
	if end := g.tail[last].Pos; g.inBounds(end) {
		g.grid.Set(g.cellOf(end), false)
	}

	for i := last; i > 0; i-- {
		g.tail[i].Move(g.tail[i-1].Pos)
	}

	g.tail[0].Move(g.head.Pos)
	g.grid.Set(g.cellOf(g.head.Pos), true)
}

func (g *Game) gameOver(reason GameOverReason) TickResult {
	rec := g.Stats.EndRound(g.score, reason, g.now())
	g.logger.Printf("round %s over: %s, score %d", rec.ID, reason, rec.Score)

	g.message = fmt.Sprintf("Game over: %s (score %d)", reason, rec.Score)
	g.messageTTL = messageTicks
	g.restart()

	return TickResult{GameOver: true, Reason: reason}
}

// SpawnFruit moves the fruit to a random free cell that is not under the
// head. It reports false, leaving the fruit in place, only when no such
// cell exists.
func (g *Game) SpawnFruit() bool {
	cols, rows := g.grid.Cols(), g.grid.Rows()

	for roll := 0; roll < cols*rows*fruitRollsPerCell; roll++ {
		cell := types.Point{X: g.rng.Intn(cols), Y: g.rng.Intn(rows)}
		if g.fruitFits(cell) {
			g.fruit.Move(cell.Scale(g.config.CellSize))
			return true
		}
	}

	// Nearly full board: pick uniformly among what is left
	free := make([]types.Point, 0)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if cell := (types.Point{X: x, Y: y}); g.fruitFits(cell) {
				free = append(free, cell)
			}
		}
	}
	if len(free) == 0 {
		g.logger.Printf("round %s: no free cell for fruit", g.Stats.CurrentRound())
		return false
	}
	g.fruit.Move(free[g.rng.Intn(len(free))].Scale(g.config.CellSize))
	return true
}

func (g *Game) fruitFits(cell types.Point) bool {
	return !g.grid.Get(cell) && cell.Scale(g.config.CellSize) != g.head.Pos
}

// HandleCommand applies a decoded host command. Direction changes only
// take effect on the next Tick; reversing onto the tail is allowed.
func (g *Game) HandleCommand(cmd types.Command) {
	if cmd == types.CommandRestart {
		g.gameOver(ReasonRestart)
		return
	}
	if d, ok := cmd.Direction(); ok {
		g.head.SetDirection(d)
	}
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Config() Config {
	return g.config
}
