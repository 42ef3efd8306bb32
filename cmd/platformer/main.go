package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/l1jgo/platformer/internal/config"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/core/event"
	coresys "github.com/l1jgo/platformer/internal/core/system"
	"github.com/l1jgo/platformer/internal/data"
	"github.com/l1jgo/platformer/internal/game"
	"github.com/l1jgo/platformer/internal/input"
	"github.com/l1jgo/platformer/internal/level"
	"github.com/l1jgo/platformer/internal/render"
	"github.com/l1jgo/platformer/internal/scripting"
	"github.com/l1jgo/platformer/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

const (
	firstFrameDT = 40 * time.Millisecond
	fpsInterval  = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/platformer.toml"
	if p := os.Getenv("PLATFORMER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger. The terminal belongs to the renderer, so logs go to a file.
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	log = log.With(zap.String("run", uuid.NewString()))
	log.Info("starting", zap.String("title", cfg.Game.Title), zap.String("config", cfgPath))

	// 3. Scripts and level data
	scripts, err := scripting.NewEngine(cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer scripts.Close()

	m, err := data.LoadMap(cfg.Game.Map, log)
	if err != nil {
		return fmt.Errorf("load map: %w", err)
	}

	keys := input.New()
	bindKeys(keys, cfg.Input.Bindings)

	// 4. Scene and level entities
	bus := event.NewBus()
	scene := ecs.NewScene(log, bus)

	deps := level.Deps{
		Log:         log,
		Input:       keys,
		Scripts:     scripts,
		Gravity:     cfg.Physics.Gravity,
		Epsilon:     cfg.Physics.Epsilon,
		GroundProbe: cfg.Physics.GroundProbe,
	}
	loader := level.NewLoader(level.NewDefaultRegistry(log), deps)
	if _, err := loader.Populate(scene, m); err != nil {
		return fmt.Errorf("populate level: %w", err)
	}
	subscribeHooks(bus, scripts, log)

	// 5. Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	term := render.NewTerminal(screen)
	term.SetViewport(cfg.Game.Width, cfg.Game.Height)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	// 6. Systems
	events := make(chan tcell.Event, 64)
	inputSys := system.NewInputSystem(events, keys, cfg.Input.Hold, quit, log)
	inputSys.OnResize(screen.Sync)

	runner := coresys.NewRunner()
	runner.Register(inputSys)
	runner.Register(system.NewSetupSystem(scene, log))
	runner.Register(system.NewPreFrameSystem(scene))
	runner.Register(system.NewRenderSystem(scene, term, statusLine(cfg.Game.Title), log))
	runner.Register(system.NewPostFrameSystem(scene))
	runner.Register(system.NewEventSystem(bus))

	// 7. Event pump and frame loop
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		screen.ChannelEvents(events, gctx.Done())
		return nil
	})
	g.Go(func() error {
		return frameLoop(gctx, runner, cfg.Game, log)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("stopped",
		zap.Duration("uptime", uptime(cfg.Game, time.Now())),
		zap.Int("entities", scene.Len()),
	)
	return err
}

// uptime is the whole seconds elapsed since the config was loaded.
func uptime(cfg config.GameConfig, now time.Time) time.Duration {
	return now.Sub(time.Unix(cfg.StartTime, 0)).Truncate(time.Second)
}

// frameLoop ticks the runner until ctx is done. Each frame gets the measured
// wall time since the previous one, clamped to max dt; the first frame uses a
// fixed step.
func frameLoop(ctx context.Context, runner *coresys.Runner, cfg config.GameConfig, log *zap.Logger) error {
	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()

	log.Info("frame loop started",
		zap.Int("systems", runner.Len()),
		zap.Duration("tick", cfg.TickRate),
		zap.Duration("max_dt", cfg.MaxDT),
	)

	var last time.Time
	frames := 0
	fpsSince := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := firstFrameDT
			if !last.IsZero() {
				dt = min(now.Sub(last), cfg.MaxDT)
			}
			last = now
			runner.Tick(dt)

			frames++
			if elapsed := now.Sub(fpsSince); elapsed >= fpsInterval {
				log.Info("fps", zap.Float64("fps", float64(frames)/elapsed.Seconds()))
				frames = 0
				fpsSince = now
			}
		}
	}
}

func bindKeys(keys *input.State, bindings map[string]string) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		keys.Bind(name, input.Key(bindings[name]))
	}
}

// subscribeHooks forwards game events to optional Lua hooks.
func subscribeHooks(bus *event.Bus, scripts *scripting.Engine, log *zap.Logger) {
	event.Subscribe(bus, func(ev event.CharacterDied) {
		log.Info("character died", zap.Int64("entity", ev.EntityID), zap.String("name", ev.Name))
		if err := scripts.CallHook("on_character_died", map[string]any{
			"id":   ev.EntityID,
			"name": ev.Name,
		}); err != nil {
			log.Warn("hook failed", zap.String("hook", "on_character_died"), zap.Error(err))
		}
	})
	event.Subscribe(bus, func(ev event.CharacterDamaged) {
		if err := scripts.CallHook("on_character_damaged", map[string]any{
			"id":     ev.EntityID,
			"amount": ev.Amount,
			"health": ev.Health,
		}); err != nil {
			log.Warn("hook failed", zap.String("hook", "on_character_damaged"), zap.Error(err))
		}
	})
}

// statusLine shows the title and the health of the first player character.
func statusLine(title string) func(*ecs.Scene) string {
	return func(s *ecs.Scene) string {
		for _, p := range ecs.AllComponents[*game.Player](s) {
			if c, ok := ecs.GetComponent[*game.Character](p.Entity()); ok {
				return fmt.Sprintf(" %s  HP %d/%d ", title, c.Health, c.MaxHealth)
			}
		}
		return " " + title + " "
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if cfg.Output != "" {
		if dir := filepath.Dir(cfg.Output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("log dir: %w", err)
			}
		}
		zapCfg.OutputPaths = []string{cfg.Output}
		zapCfg.ErrorOutputPaths = []string{cfg.Output}
	}

	return zapCfg.Build()
}
