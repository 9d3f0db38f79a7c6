package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"math/rand/v2"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"blotter/internal/config"
	"blotter/internal/grid"
	"blotter/internal/incr"
	"blotter/internal/logging"
	"blotter/internal/row"
	"blotter/internal/sim"
	"blotter/internal/tui"
)

func main() {
	configPath := flag.String("config", "blotter.yaml", "Path to the YAML config file")
	seed := flag.Uint64("seed", 0, "Random seed, overrides the config when set")
	rows := flag.Int("rows", 0, "Number of generated rows, overrides the config when set")
	noSim := flag.Bool("no-sim", false, "Disable simulated market activity")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("unable to load config")
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *rows != 0 {
		cfg.Rows = *rows
	}
	if *noSim {
		cfg.Simulation.Enabled = false
	}

	closer, err := logging.Setup(cfg.Log, true)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to set up logging")
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	// Build the grid with generated rows.
	clock := incr.NewClock(time.Now)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))
	g := grid.New(clock, rng)
	for range cfg.Rows {
		g.Add(row.Random(rng, clock.Now()))
	}
	if err := g.SortBy(cfg.SortColumn); err != nil {
		log.Warn().Err(err).Msg("ignoring sort column")
	}
	g.SetFilter(cfg.Filter)

	p := tea.NewProgram(
		tui.New(g, clock),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if cfg.Simulation.Enabled {
		driver, err := sim.NewDriver(
			cfg.Simulation.KickInterval,
			cfg.Simulation.FillRatio,
			cfg.Seed,
			func(k sim.Kick) { p.Send(tui.KickMsg(k)) },
		)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to start simulation")
		}
		t := driver.Start(ctx)
		defer func() {
			t.Kill(nil)
			if err := t.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("simulation exited")
			}
		}()
	}

	log.Info().Int("rows", g.Len()).Msg("blotter running")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error().Err(err).Msg("blotter exited")
	}
}

// loadConfig reads the config file, falling back to defaults when there is
// none.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadAndValidate(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}
