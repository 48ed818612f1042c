package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gridsnake/ai"
	"gridsnake/audio"
	"gridsnake/game"
	"gridsnake/logging"
	"gridsnake/ui"
)

func main() {
	cellSize := flag.Int("cell", game.DefaultCellSize, "Cell size in pixels (at least 3)")
	width := flag.Int("width", game.DefaultBoardWidth, "Board width in pixels")
	height := flag.Int("height", game.DefaultBoardHeight, "Board height in pixels")
	speed := flag.Int("speed", int(game.DefaultTickInterval/time.Millisecond), "Tick interval in milliseconds (lower = faster)")
	seed := flag.Uint64("seed", 0, "Fruit placement seed (0 = random)")
	autopilot := flag.Bool("autopilot", false, "Start with the autopilot steering")
	sound := flag.Bool("sound", false, "Play a blip when fruit is eaten")
	debug := flag.Bool("debug", false, "Write logs to "+logging.DefaultDir)
	flag.Parse()

	if logFile := logging.Setup(logging.DefaultDir, *debug); logFile != nil {
		defer logFile.Close()
	}

	cfg := game.Config{
		CellSize:     *cellSize,
		BoardWidth:   *width,
		BoardHeight:  *height,
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

	winW, winH := ui.WindowSize(cfg)
	rl.InitWindow(winW, winH, "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	pilot := ai.NewAutopilot()
	renderer.SetAutopilot(*autopilot)

	snapshot := g.Snapshot()
	lastUpdate := time.Now()

	for !rl.WindowShouldClose() {
		in := ui.PollInput()
		if in.Quit {
			break
		}
		if in.ToggleAutopilot {
			*autopilot = !*autopilot
			renderer.SetAutopilot(*autopilot)
			log.Printf("autopilot %v", *autopilot)
		}
		for _, cmd := range in.Commands {
			g.HandleCommand(cmd)
		}

		// Update game state at fixed interval
		if elapsed := time.Since(lastUpdate); elapsed >= cfg.TickInterval {
			if *autopilot {
				g.HandleCommand(pilot.Next(snapshot))
			}
			switch res := g.Tick(elapsed); {
			case res.Ate:
				blip.Play(audio.EatTone)
			case res.GameOver:
				blip.Play(audio.GameOverTone)
			}
			lastUpdate = time.Now()
			snapshot = g.Snapshot()
		} else if len(in.Commands) > 0 {
			// Restart must show up without waiting for the next tick
			snapshot = g.Snapshot()
		}

		renderer.Draw(snapshot)
	}

	log.Printf("session over: %d games, best %d, average %.2f",
		g.Stats.GamesPlayed(), g.Stats.BestScore(), g.Stats.AverageScore())
}
