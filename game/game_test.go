package game

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"golang.org/x/exp/rand"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// 10x10 cells, head starts at (50,50) with the tail at (40,50) and (30,50)
func testConfig() Config {
	return Config{CellSize: 10, BoardWidth: 100, BoardHeight: 100, TickInterval: 100 * time.Millisecond}
}

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	g, err := NewGame(cfg, WithSeed(42))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	return g
}

// setTail replaces the tail and rebuilds the occupancy grid to match.
// Score follows the tail length so len(tail) == score+2 keeps holding.
func setTail(g *Game, positions ...types.Point) {
	g.grid.Clear()
	g.tail = g.tail[:0]
	for _, p := range positions {
		g.tail = append(g.tail, entity.NewTailSegment(p, g.config.CellSize))
		g.grid.Set(g.cellOf(p), true)
	}
	g.score = len(positions) - initialTailLength
}

func pt(x, y int) types.Point { return types.Point{X: x, Y: y} }

// checkInvariants verifies the board bookkeeping. ate is true right after a
// tick that consumed a fruit, when the new block still sits on the head.
func checkInvariants(t *testing.T, g *Game, ate bool) {
	t.Helper()

	if len(g.tail) != g.score+initialTailLength {
		t.Fatalf("tail length %d, score %d", len(g.tail), g.score)
	}

	want := len(g.tail)
	if ate {
		want--
	}

	seen := make(map[types.Point]bool)
	for i, seg := range g.tail {
		if seen[seg.Pos] {
			t.Fatalf("tail segment %d shares cell %v", i, seg.Pos)
		}
		seen[seg.Pos] = true

		// Only the free end of a fresh round may start off the board
		if !g.inBounds(seg.Pos) {
			if i != len(g.tail)-1 || len(g.tail) != initialTailLength {
				t.Fatalf("tail segment %d at %v off the board", i, seg.Pos)
			}
			want--
			continue
		}

		pending := ate && i == len(g.tail)-1
		if pending {
			if seg.Pos != g.head.Pos {
				t.Fatalf("new segment at %v, head at %v", seg.Pos, g.head.Pos)
			}
			continue
		}
		if !g.grid.Get(g.cellOf(seg.Pos)) {
			t.Fatalf("tail segment %d at %v not marked occupied", i, seg.Pos)
		}
	}

	if got := g.grid.Count(); got != want {
		t.Fatalf("grid marks %d cells, want %d", got, want)
	}

	checkFruit(t, g)
}

func checkFruit(t *testing.T, g *Game) {
	t.Helper()
	f := g.fruit.Pos
	cs := g.config.CellSize
	if f.X%cs != 0 || f.Y%cs != 0 {
		t.Fatalf("fruit %v not grid aligned", f)
	}
	if !g.inBounds(f) {
		t.Fatalf("fruit %v outside board", f)
	}
	if f == g.head.Pos {
		t.Fatalf("fruit %v under the head", f)
	}
	for _, seg := range g.tail {
		if seg.Pos == f {
			t.Fatalf("fruit %v inside the tail", f)
		}
	}
}

func TestNewGame_InitialState(t *testing.T) {
	g := newTestGame(t, testConfig())

	if g.Score() != 0 {
		t.Errorf("Expected score 0, got %d", g.Score())
	}
	if g.head.Pos != pt(50, 50) {
		t.Errorf("Expected head at (50,50), got %v", g.head.Pos)
	}
	if g.head.Orientation != pt(10, 0) {
		t.Errorf("Expected rightward orientation, got %v", g.head.Orientation)
	}
	if len(g.tail) != 2 {
		t.Fatalf("Expected 2 tail segments, got %d", len(g.tail))
	}
	if g.tail[0].Pos != pt(40, 50) || g.tail[1].Pos != pt(30, 50) {
		t.Errorf("Unexpected tail positions %v, %v", g.tail[0].Pos, g.tail[1].Pos)
	}
	for _, seg := range g.tail {
		if seg.Size != 10 {
			t.Errorf("Expected segment size 10, got %d", seg.Size)
		}
	}
	checkInvariants(t, g, false)
}

func TestNewGame_CenterRoundsDown(t *testing.T) {
	// 150/2 = 75 is not aligned, nearest cell below is 70
	cfg := Config{CellSize: 10, BoardWidth: 150, BoardHeight: 90, TickInterval: time.Second}
	g := newTestGame(t, cfg)

	if g.head.Pos != pt(70, 40) {
		t.Errorf("Expected head at (70,40), got %v", g.head.Pos)
	}
}

func TestNewGame_MinimumBoard(t *testing.T) {
	// Three cells wide: the head starts at x=10, so the free end of the
	// tail begins one cell left of the board
	cfg := Config{CellSize: 10, BoardWidth: 30, BoardHeight: 30, TickInterval: time.Second}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	g := newTestGame(t, cfg)

	if g.head.Pos != pt(10, 10) {
		t.Fatalf("Expected head at (10,10), got %v", g.head.Pos)
	}
	if g.tail[1].Pos != pt(-10, 10) {
		t.Fatalf("Expected free end at (-10,10), got %v", g.tail[1].Pos)
	}
	if got := g.grid.Count(); got != 1 {
		t.Errorf("Expected 1 marked cell, got %d", got)
	}
	checkInvariants(t, g, false)

	g.fruit.Move(pt(0, 0))
	if res := g.Tick(cfg.TickInterval); res.GameOver || res.Ate {
		t.Fatalf("Unexpected first tick result %+v", res)
	}
	if g.tail[0].Pos != pt(10, 10) || g.tail[1].Pos != pt(0, 10) {
		t.Errorf("Unexpected tail %v, %v", g.tail[0].Pos, g.tail[1].Pos)
	}
	checkInvariants(t, g, false)

	if res := g.Tick(cfg.TickInterval); res.GameOver {
		t.Fatal("Unexpected game over on second tick")
	}
	if res := g.Tick(cfg.TickInterval); !res.GameOver || res.Reason != ReasonBoundary {
		t.Fatalf("Expected boundary game over, got %+v", res)
	}
	checkInvariants(t, g, false)

	r := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		if r.Intn(2) == 0 {
			g.HandleCommand(types.Command(r.Intn(6)))
		}
		res := g.Tick(cfg.TickInterval)
		checkInvariants(t, g, res.Ate)
	}
}

func TestNewGame_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.CellSize = 2

	g, err := NewGame(cfg)
	if err == nil {
		t.Fatal("Expected error for cell size 2")
	}
	if g != nil {
		t.Error("Expected nil game on invalid config")
	}
}

func TestTick_PropagatesTail(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))

	res := g.Tick(g.config.TickInterval)
	if res.Ate || res.GameOver {
		t.Fatalf("Unexpected result %+v", res)
	}

	if g.head.Pos != pt(60, 50) {
		t.Errorf("Expected head at (60,50), got %v", g.head.Pos)
	}
	if g.tail[0].Pos != pt(50, 50) || g.tail[1].Pos != pt(40, 50) {
		t.Errorf("Unexpected tail positions %v, %v", g.tail[0].Pos, g.tail[1].Pos)
	}
	if g.grid.Get(pt(3, 5)) {
		t.Error("Expected vacated cell (3,5) to be free")
	}
	checkInvariants(t, g, false)
}

func TestTick_LongTailFollowsHead(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))
	// L-shaped body: left of the head, then down
	setTail(g, pt(40, 50), pt(30, 50), pt(30, 60), pt(30, 70))
	g.HandleCommand(types.CommandUp)

	g.Tick(g.config.TickInterval)

	want := []types.Point{pt(50, 50), pt(40, 50), pt(30, 50), pt(30, 60)}
	for i, p := range want {
		if g.tail[i].Pos != p {
			t.Errorf("segment %d: expected %v, got %v", i, p, g.tail[i].Pos)
		}
	}
	if g.head.Pos != pt(50, 40) {
		t.Errorf("Expected head at (50,40), got %v", g.head.Pos)
	}
	checkInvariants(t, g, false)
}

func TestTick_EatsFruit(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(60, 50))

	res := g.Tick(g.config.TickInterval)
	if !res.Ate {
		t.Fatal("Expected fruit to be eaten")
	}
	if g.Score() != 1 {
		t.Errorf("Expected score 1, got %d", g.Score())
	}
	if len(g.tail) != 3 {
		t.Fatalf("Expected 3 tail segments, got %d", len(g.tail))
	}
	if g.fruit.Pos == pt(60, 50) {
		t.Error("Expected fruit to relocate")
	}
	checkInvariants(t, g, true)

	// The extra block lands at the free end on the next tick
	g.fruit.Move(pt(0, 90))
	g.Tick(g.config.TickInterval)

	want := []types.Point{pt(60, 50), pt(50, 50), pt(40, 50)}
	for i, p := range want {
		if g.tail[i].Pos != p {
			t.Errorf("segment %d: expected %v, got %v", i, p, g.tail[i].Pos)
		}
	}
	checkInvariants(t, g, false)
}

func TestTick_SelfCollisionRestarts(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))
	// Moving left lands on (40,50), which segment 1 takes over
	setTail(g, pt(40, 50), pt(40, 60), pt(40, 70))
	g.HandleCommand(types.CommandLeft)

	res := g.Tick(g.config.TickInterval)
	if res.GameOver {
		t.Fatal("Collision must be detected on the following tick")
	}
	if g.head.Pos != pt(40, 50) {
		t.Fatalf("Expected head at (40,50), got %v", g.head.Pos)
	}

	res = g.Tick(g.config.TickInterval)
	if !res.GameOver || res.Reason != ReasonSelfCollision {
		t.Fatalf("Expected self collision, got %+v", res)
	}
	if g.Score() != 0 {
		t.Errorf("Expected score reset to 0, got %d", g.Score())
	}
	if len(g.tail) != 2 {
		t.Errorf("Expected tail reset to 2, got %d", len(g.tail))
	}

	rec, ok := g.Stats.LastRound()
	if !ok {
		t.Fatal("Expected a finished round")
	}
	if rec.Score != 1 || rec.Reason != ReasonSelfCollision {
		t.Errorf("Unexpected round record %+v", rec)
	}
	checkInvariants(t, g, false)
}

func TestTick_ChasingTailEndIsSafe(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))
	// Square loop: the head moves onto the cell the last block is leaving
	setTail(g, pt(60, 50), pt(60, 60), pt(50, 60))
	g.HandleCommand(types.CommandDown)

	g.Tick(g.config.TickInterval)
	res := g.Tick(g.config.TickInterval)
	if res.GameOver {
		t.Fatalf("Unexpected game over: %s", res.Reason)
	}
}

func TestTick_BoundaryRestarts(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))
	g.head.Pos = pt(90, 50)
	setTail(g, pt(80, 50), pt(70, 50))

	res := g.Tick(g.config.TickInterval)
	if res.GameOver {
		t.Fatal("Boundary must be checked at the start of the following tick")
	}
	if g.head.Pos != pt(100, 50) {
		t.Fatalf("Expected head at (100,50), got %v", g.head.Pos)
	}

	res = g.Tick(g.config.TickInterval)
	if !res.GameOver || res.Reason != ReasonBoundary {
		t.Fatalf("Expected boundary game over, got %+v", res)
	}
	if g.head.Pos != pt(50, 50) {
		t.Errorf("Expected head back at center, got %v", g.head.Pos)
	}
	checkInvariants(t, g, false)
}

func TestTick_TopBoundary(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(90, 90))
	g.head.Pos = pt(50, 0)
	setTail(g, pt(50, 10), pt(50, 20))
	g.HandleCommand(types.CommandUp)

	g.Tick(g.config.TickInterval)
	if res := g.Tick(g.config.TickInterval); res.Reason != ReasonBoundary {
		t.Fatalf("Expected boundary game over, got %+v", res)
	}
}

func TestTick_ReversalCollides(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.HandleCommand(types.CommandLeft)

	res := g.Tick(g.config.TickInterval)
	if res.GameOver {
		t.Fatal("Reversal must not end the game on the same tick")
	}
	res = g.Tick(g.config.TickInterval)
	if !res.GameOver || res.Reason != ReasonSelfCollision {
		t.Fatalf("Expected self collision after reversal, got %+v", res)
	}
}

func TestTick_InvariantsUnderRandomInput(t *testing.T) {
	g := newTestGame(t, testConfig())
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		if r.Intn(3) == 0 {
			g.HandleCommand(types.Command(r.Intn(7)))
		}

		before := len(g.tail)
		res := g.Tick(g.config.TickInterval)

		switch {
		case res.GameOver:
			if len(g.tail) != initialTailLength {
				t.Fatalf("tick %d: tail %d after restart", i, len(g.tail))
			}
		case res.Ate:
			if len(g.tail) != before+1 {
				t.Fatalf("tick %d: tail grew from %d to %d", i, before, len(g.tail))
			}
		default:
			if len(g.tail) != before {
				t.Fatalf("tick %d: tail changed from %d to %d", i, before, len(g.tail))
			}
		}
		checkInvariants(t, g, res.Ate)
	}
}

func TestSpawnFruit_AlwaysValid(t *testing.T) {
	g := newTestGame(t, testConfig())
	setTail(g, pt(40, 50), pt(30, 50), pt(20, 50), pt(10, 50), pt(0, 50))

	for i := 0; i < 500; i++ {
		if !g.SpawnFruit() {
			t.Fatal("Expected a free cell")
		}
		checkFruit(t, g)
	}
}

func TestSpawnFruit_FallbackScan(t *testing.T) {
	g := newTestGame(t, testConfig())
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.grid.Set(pt(x, y), true)
		}
	}
	// Only (9,9) is free, (5,5) holds the head
	g.grid.Set(pt(9, 9), false)
	g.grid.Set(pt(5, 5), false)

	if !g.SpawnFruit() {
		t.Fatal("Expected fruit to be placed")
	}
	if g.fruit.Pos != pt(90, 90) {
		t.Errorf("Expected fruit at (90,90), got %v", g.fruit.Pos)
	}
}

func TestSpawnFruit_FullBoard(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.grid.Set(pt(x, y), true)
		}
	}
	g.grid.Set(pt(5, 5), false)

	if g.SpawnFruit() {
		t.Fatal("Expected no room for fruit")
	}
	if g.fruit.Pos != pt(0, 0) {
		t.Errorf("Expected fruit to stay put, got %v", g.fruit.Pos)
	}
}

func TestHandleCommand_AppliesOnNextTick(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(0, 0))

	g.HandleCommand(types.CommandDown)
	if g.head.Pos != pt(50, 50) {
		t.Fatalf("Head moved before tick: %v", g.head.Pos)
	}
	if g.head.Orientation != pt(0, 10) {
		t.Errorf("Expected downward orientation, got %v", g.head.Orientation)
	}

	g.Tick(g.config.TickInterval)
	if g.head.Pos != pt(50, 60) {
		t.Errorf("Expected head at (50,60), got %v", g.head.Pos)
	}
}

func TestHandleCommand_IgnoresUnknown(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.HandleCommand(types.CommandNone)
	g.HandleCommand(types.Command(99))

	if g.head.Orientation != pt(10, 0) {
		t.Errorf("Orientation changed to %v", g.head.Orientation)
	}
	if g.Stats.GamesPlayed() != 0 {
		t.Errorf("Expected no finished rounds, got %d", g.Stats.GamesPlayed())
	}
}

func TestHandleCommand_Restart(t *testing.T) {
	g := newTestGame(t, testConfig())
	g.fruit.Move(pt(60, 50))
	g.Tick(g.config.TickInterval)
	firstRound := g.Stats.CurrentRound()

	g.HandleCommand(types.CommandRestart)

	if g.Score() != 0 || len(g.tail) != 2 {
		t.Errorf("Expected fresh game, got score %d tail %d", g.Score(), len(g.tail))
	}
	rec, ok := g.Stats.LastRound()
	if !ok || rec.Reason != ReasonRestart || rec.Score != 1 || rec.ID != firstRound {
		t.Errorf("Unexpected round record %+v", rec)
	}
	if g.Stats.CurrentRound() == firstRound {
		t.Error("Expected a new round ID")
	}
	checkInvariants(t, g, false)
}

func TestGameOver_MessageExpires(t *testing.T) {
	cfg := Config{CellSize: 10, BoardWidth: 200, BoardHeight: 200, TickInterval: time.Second}
	g := newTestGame(t, cfg)
	g.HandleCommand(types.CommandRestart)

	if !strings.Contains(g.Snapshot().Message, "Game over") {
		t.Fatalf("Expected game over message, got %q", g.Snapshot().Message)
	}

	for i := 0; i < messageTicks; i++ {
		if res := g.Tick(cfg.TickInterval); res.GameOver {
			t.Fatalf("Unexpected game over at tick %d", i)
		}
	}
	if msg := g.Snapshot().Message; msg != "" {
		t.Errorf("Expected message to clear, got %q", msg)
	}
}

func TestGame_LogsRounds(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewGame(testConfig(), WithSeed(1), WithLogger(log.New(&buf, "", 0)))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	g.HandleCommand(types.CommandRestart)

	out := buf.String()
	if !strings.Contains(out, "started") || !strings.Contains(out, "over: restarted") {
		t.Errorf("Unexpected log output %q", out)
	}
}

func TestGame_UsesClockForRounds(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	g, err := NewGame(testConfig(), WithSeed(1), WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	now = start.Add(3 * time.Second)
	g.HandleCommand(types.CommandRestart)

	rec, _ := g.Stats.LastRound()
	if rec.Duration() != 3*time.Second {
		t.Errorf("Expected 3s round, got %s", rec.Duration())
	}
}

func TestSnapshot_CopiesState(t *testing.T) {
	g := newTestGame(t, testConfig())
	s := g.Snapshot()

	if s.Head != (Rect{X: 50, Y: 50, Size: 10}) {
		t.Errorf("Unexpected head %+v", s.Head)
	}
	if s.Direction != types.Right {
		t.Errorf("Expected right, got %s", s.Direction)
	}
	if len(s.Tail) != 2 || s.Tail[0] != (Rect{X: 40, Y: 50, Size: 10}) {
		t.Errorf("Unexpected tail %+v", s.Tail)
	}
	if s.Cols() != 10 || s.Rows() != 10 {
		t.Errorf("Expected 10x10, got %dx%d", s.Cols(), s.Rows())
	}
	if s.Round == "" {
		t.Error("Expected a round ID")
	}

	s.Tail[0].X = 0
	if g.tail[0].Pos.X != 40 {
		t.Error("Snapshot shares tail storage with the game")
	}
}
