package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"gridsnake/ai"
	"gridsnake/audio"
	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/logging"
	"gridsnake/term"
)

// Terminal cells are coarse, so the board is measured in cells here and
// converted to pixels with a fixed cell size.
const cellSize = 10

func main() {
	cols := flag.Int("cols", 30, "Board width in cells (at least 3)")
	rows := flag.Int("rows", 20, "Board height in cells (at least 3)")
	speed := flag.Int("speed", int(game.DefaultTickInterval/time.Millisecond), "Tick interval in milliseconds (lower = faster)")
	seed := flag.Uint64("seed", 0, "Fruit placement seed (0 = random)")
	autopilot := flag.Bool("autopilot", false, "Start with the autopilot steering")
	sound := flag.Bool("sound", false, "Play a blip when fruit is eaten")
	debugLog := flag.Bool("debug", false, "Write logs to "+logging.DefaultDir)
	flag.Parse()

	if logFile := logging.Setup(logging.DefaultDir, *debugLog); logFile != nil {
		defer logFile.Close()
	}

	cfg := game.Config{
		CellSize:     cellSize,
		BoardWidth:   *cols * cellSize,
		BoardHeight:  *rows * cellSize,
		TickInterval: time.Duration(*speed) * time.Millisecond,
	}
	opts := []game.Option{game.WithLogger(log.Default())}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}
	g, err := game.NewGame(cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	var blip *audio.Blip
	if *sound {
		if blip, err = audio.NewBlip(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		defer blip.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\nSNAKE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	run(screen, g, blip, *autopilot)
	screen.Fini()

	fmt.Printf("Games: %d  Best: %d  Average: %.2f\n",
		g.Stats.GamesPlayed(), g.Stats.BestScore(), g.Stats.AverageScore())
}

// run owns the game: input arrives on a channel and is applied between
// ticks on this goroutine only.
func run(screen tcell.Screen, g *game.Game, blip *audio.Blip, autopilot bool) {
	renderer := term.NewRenderer(screen)
	renderer.SetAutopilot(autopilot)
	pilot := ai.NewAutopilot()

	cfg := g.Config()
	w, h := screen.Size()
	if needW, needH := term.Size(cfg.Grid().Width, cfg.Grid().Height); w < needW || h < needH {
		log.Printf("terminal %dx%d smaller than board %dx%d", w, h, needW, needH)
	}

	evChan := make(chan tcell.Event, 100)
	quitChan := make(chan struct{})
	go screen.ChannelEvents(evChan, quitChan)
	defer close(quitChan)

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	renderer.Draw(g.Snapshot())
	lastTick := time.Now()

	for {
		select {
		case now := <-ticker.C:
			if autopilot {
				g.HandleCommand(pilot.Next(g.Snapshot()))
			}
			res := g.Tick(now.Sub(lastTick))
			lastTick = now
			switch {
			case res.Ate:
				blip.Play(audio.EatTone)
			case res.GameOver:
				blip.Play(audio.GameOverTone)
			}
			renderer.Draw(g.Snapshot())

		case ev := <-evChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				renderer.Draw(g.Snapshot())
			case *tcell.EventKey:
				action, cmd := term.DecodeKey(ev)
				switch action {
				case term.ActionQuit:
					return
				case term.ActionToggleAutopilot:
					autopilot = !autopilot
					renderer.SetAutopilot(autopilot)
					log.Printf("autopilot %v", autopilot)
				case term.ActionCommand:
					g.HandleCommand(cmd)
					if cmd == types.CommandRestart {
						renderer.Draw(g.Snapshot())
					}
				}
			}
		}
	}
}
