package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clixmods/trophies/internal/catalog"
	"github.com/clixmods/trophies/internal/config"
	"github.com/clixmods/trophies/internal/engine"
	"github.com/clixmods/trophies/internal/storage"
)

var BUILD_VERSION = "dev"

var configFile = flag.String("config", "", "use a custom config file instead of ~/.config/trophies/trophies.yaml")
var dbFile = flag.String("db", "", "override the trophy database path")
var locale = flag.String("locale", "", "override the catalog locale")
var verbose = flag.Bool("v", false, "log at debug level")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printUsage()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := initializeLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync() // Flush any buffered log entries
	}()

	store, err := initializeStore(cfg)
	if err != nil {
		logger.Error("failed to open trophy database", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := flag.Arg(0)
	eng := initializeEngine(store, cfg, logger, command == "watch")

	if err := run(ctx, eng, command, flag.Args()[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, eng *engine.Engine, command string, args []string) error {
	switch command {
	case "list":
		eng.Load(ctx)
		unlocked, total, ratio := eng.Progress()
		fmt.Print(engine.RenderList(eng.List(), unlocked, total, ratio))
		return nil

	case "stats":
		eng.Load(ctx)
		unlocked, total, ratio := eng.Progress()
		fmt.Print(engine.RenderStats(eng.List(), unlocked, total, ratio))
		return nil

	case "visit":
		if len(args) != 1 {
			return fmt.Errorf("usage: trophyctl visit <path>")
		}
		eng.Load(ctx)
		eng.RecordVisit(args[0])
		eng.Evaluate()
		return nil

	case "unlock":
		if len(args) != 1 {
			return fmt.Errorf("usage: trophyctl unlock <id>")
		}
		eng.Load(ctx)
		fresh, err := eng.ForceUnlock(args[0])
		if err != nil {
			return err
		}
		if !fresh {
			fmt.Printf("%s was already unlocked\n", args[0])
		}
		return nil

	case "reset":
		if err := eng.ResetAll(); err != nil {
			return err
		}
		fmt.Println("trophy progress reset")
		return nil

	case "watch":
		eng.Init(ctx, "/")
		fmt.Println("watching; feed pages with 'trophyctl visit' and interrupt to stop")
		<-ctx.Done()
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage() {
	fmt.Println("Usage: trophyctl [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list          show every trophy and its unlock state")
	fmt.Println("  stats         show completion progress")
	fmt.Println("  visit <path>  record a page visit and evaluate")
	fmt.Println("  unlock <id>   force-unlock a trophy")
	fmt.Println("  reset         wipe all trophy progress")
	fmt.Println("  watch         run the periodic evaluation loop until interrupted")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func loadConfig() (config.Config, error) {
	path := *configFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if *dbFile != "" {
		cfg.StoragePath = *dbFile
	}
	if *locale != "" {
		cfg.Locale = *locale
	}
	return cfg, nil
}

func initializeLogger() (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if *verbose {
		loggerConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	loggerConfig.OutputPaths = []string{"stderr"}
	return loggerConfig.Build()
}

func initializeStore(cfg config.Config) (storage.Store, error) {
	return storage.NewManager(cfg.StoragePath)
}

func initializeEngine(store storage.Store, cfg config.Config, logger *zap.Logger, background bool) *engine.Engine {
	opts := engine.Options{
		Locale:          cfg.Locale,
		HomePath:        cfg.HomePath,
		RecheckInterval: cfg.RecheckInterval.Std(),
		NotifyStagger:   cfg.NotifyStagger.Std(),
	}
	if !background {
		// one-shot commands must print their notifications before exiting
		opts.RecheckInterval = -1
		opts.Schedule = func(_ time.Duration, fn func()) { fn() }
	}
	loader := catalog.NewLoader(cfg.CatalogURLs, logger)
	return engine.New(store, loader, consolePresenter{}, logger, opts)
}

// consolePresenter prints notifications to stdout.
type consolePresenter struct{}

func (consolePresenter) Present(message string, kind string, opts engine.PresentOptions) {
	switch {
	case kind == "celebration":
		fmt.Printf("🎉 %s\n", message)
	case opts.Title != "":
		fmt.Printf("%s %s %s\n", opts.Avatar, opts.Title, message)
	default:
		fmt.Println(message)
	}
}
