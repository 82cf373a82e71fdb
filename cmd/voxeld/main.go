package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voxelgo/engine/internal/config"
	"github.com/voxelgo/engine/internal/core/event"
	coresys "github.com/voxelgo/engine/internal/core/system"
	"github.com/voxelgo/engine/internal/data"
	"github.com/voxelgo/engine/internal/metrics"
	"github.com/voxelgo/engine/internal/scripting"
	"github.com/voxelgo/engine/internal/system"
	"github.com/voxelgo/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m            voxelgo  v0.1.0                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       ECS voxel world engine in Go        \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mInstance:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main engine logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("VOXELGO_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Engine.Name)

	// 3. Load data tables
	printSection("Data")

	catalog, err := data.LoadBlockTable(cfg.Engine.BlockList)
	if err != nil {
		return fmt.Errorf("load block list: %w", err)
	}
	printStat("Block templates", catalog.Count())

	// 4. Initialize Lua scripting engine
	luaEngine, err := scripting.NewEngine(cfg.Engine.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("Lua scripts loaded")
	fmt.Println()

	// 5. Metrics registry and exporter
	var stats *metrics.WorldMetrics
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		stats = metrics.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.BindAddress, mux); err != nil {
				log.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// 6. Build the world core
	printSection("World")

	bus := event.NewBus()
	core := world.NewCore(world.Options{
		Dims: world.Dims{
			SizeX: cfg.World.ChunkSizeX,
			SizeY: cfg.World.ChunkSizeY,
			SizeZ: cfg.World.ChunkSizeZ,
		},
		RenderDistance:    cfg.World.RenderDistance,
		MaxRenderDistance: cfg.World.MaxRenderDistance,
	}, catalog, bus, log, stats)
	core.Blocks.SetLightResolver(luaEngine.BlockLight)

	// 7. Seed the world from Lua
	seeds := luaEngine.SeedWorld()
	if len(seeds) > 0 {
		types := make([]world.BlockID, len(seeds))
		positions := make([]world.BlockPos, len(seeds))
		for i, s := range seeds {
			types[i] = world.BlockID(s.Type)
			positions[i] = world.BlockPos{X: s.X, Y: s.Y, Z: s.Z}
		}
		if _, err := core.Batch.CreateBlocksBatch(types, positions); err != nil {
			return fmt.Errorf("seed world: %w", err)
		}
	}
	printStat("Seeded blocks", core.Index.Len())

	// 8. Create systems and register with runner
	runner := coresys.NewRunner()
	streamSys := system.NewChunkStreamSystem(core)
	runner.Register(streamSys)
	runner.Register(system.NewDirtyMarkSystem(core))
	runner.Register(system.NewVisibilitySystem(core))
	runner.Register(system.NewMeshSweepSystem(core, 8))
	runner.Register(system.NewCleanupSystem(core.World))
	fmt.Println()

	// 9. Start game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	printSection("Engine ready")
	if cfg.Metrics.Enabled {
		printReady(fmt.Sprintf("Metrics on %s", cfg.Metrics.BindAddress))
	}
	printReady(fmt.Sprintf("Game loop started (tick: %s)", cfg.Engine.TickRate))
	fmt.Println()

	// Demo viewer: walks east one chunk every few seconds so streaming and
	// unloading are observable without a connected client.
	viewer := world.ChunkPos{}
	streamSys.SetViewer(viewer)

	moveCounter := 0
	moveInterval := int(5 * time.Second / cfg.Engine.TickRate)
	if moveInterval < 1 {
		moveInterval = 1
	}

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Engine.TickRate)

			moveCounter++
			if moveCounter >= moveInterval {
				moveCounter = 0
				viewer.X++
				streamSys.SetViewer(viewer)
				center := core.Index.Dims().Bounds(viewer).Center()
				core.SetViewFrustum(world.AxisAlignedFrustum(
					world.Vec3{X: center.X - cfg.World.MaxRenderDistance, Y: center.Y - cfg.World.MaxRenderDistance, Z: center.Z - cfg.World.MaxRenderDistance},
					world.Vec3{X: center.X + cfg.World.MaxRenderDistance, Y: center.Y + cfg.World.MaxRenderDistance, Z: center.Z + cfg.World.MaxRenderDistance},
				), center)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			log.Info("engine stopped",
				zap.Int("blocks", core.Index.Len()),
				zap.Int("chunks", core.Chunks.Count()))
			return nil
		}
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
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
