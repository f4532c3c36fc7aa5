package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-guardian/internal/bot"
	"go-guardian/internal/commands"
	"go-guardian/internal/config"
	"go-guardian/internal/database"
	"go-guardian/internal/dispatcher"
	"go-guardian/internal/guards"
	"go-guardian/internal/logging"
	"go-guardian/internal/mute"
	"go-guardian/internal/notifier"
	"go-guardian/internal/state"
	"go-guardian/internal/store"
	"go-guardian/internal/watchdog"
)

func main() {
	fmt.Println("Starting Guardian")

	cfg := loadConfig()

	if err := initializeLogging(cfg); err != nil {
		panic(err)
	}

	if err := initializeDatabase(cfg); err != nil {
		panic(err)
	}

	stores, err := openStores(cfg)
	if err != nil {
		panic(err)
	}

	components := startComponents(cfg)

	if err := initializeBot(cfg, stores, components); err != nil {
		panic(err)
	}

	components.sweeper.Start()
	components.dog.Start()

	logging.Info("All components started successfully")

	waitForShutdown()

	stopComponents(components)

	database.Close()
	bot.GetSession().Close()

	logging.Info("Shutdown complete")
	logging.GlobalLogger.Close()
}

func loadConfig() *config.Config {
	cfg := config.LoadOrDefault("config.json")

	if cfg.Bot.Token == "" {
		fmt.Println("No bot token configured; set bot.token in config.json or DISCORD_TOKEN")
		os.Exit(1)
	}

	return cfg
}

func initializeLogging(cfg *config.Config) error {
	return logging.InitGlobalLogger(logging.LevelInfo, cfg.Bot.LogPath)
}

func initializeDatabase(cfg *config.Config) error {
	fmt.Println("Initializing SQLite database...")
	return database.Initialize(cfg.Bot.DatabasePath)
}

// Stores groups the persistent per-guild document stores.
type Stores struct {
	whitelist *store.Whitelist
	mutes     *store.Mutes
	warnings  *store.Warnings
	banCounts *store.BanCounts
	vanity    *store.Vanity
}

func openStores(cfg *config.Config) (*Stores, error) {
	if err := store.EnsureDataDir(cfg.Bot.DataDir); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &Stores{
		whitelist: store.OpenWhitelist(cfg.Bot.DataDir),
		mutes:     store.OpenMutes(cfg.Bot.DataDir),
		warnings:  store.OpenWarnings(cfg.Bot.DataDir),
		banCounts: store.OpenBanCounts(cfg.Bot.DataDir),
		vanity:    store.OpenVanity(cfg.Bot.DataDir),
	}, nil
}

type Components struct {
	jobQueue    *dispatcher.JobQueue
	httpPool    *dispatcher.HTTPPool
	rateLimiter *dispatcher.RateLimitMonitor
	workers     []*dispatcher.RESTWorker
	sweeper     *mute.Scheduler
	dog         *watchdog.Watchdog
}

func startComponents(cfg *config.Config) *Components {
	jobQueue := dispatcher.NewJobQueue(16384)

	httpPool := dispatcher.NewHTTPPool(cfg.Network.HTTPPoolSize)
	httpPool.Warmup(cfg.Network.APIBaseURL)

	rateLimiter := dispatcher.NewRateLimitMonitor()
	executor := dispatcher.NewRequestExecutor(httpPool, rateLimiter, cfg.Bot.Token, cfg.Network.APIBaseURL)

	dispatcherCPU := -1
	if cfg.Runtime.CPUIsolation {
		dispatcherCPU = cfg.Runtime.DispatcherCPU
	}

	workers := make([]*dispatcher.RESTWorker, cfg.Network.WorkerCount)
	for i := 0; i < cfg.Network.WorkerCount; i++ {
		worker := dispatcher.NewRESTWorker(jobQueue, executor, i, dispatcherCPU)
		workers[i] = worker
		go worker.Start()
	}

	dog := watchdog.New(30 * time.Second)
	dog.Register("mute-sweep", 2*time.Duration(cfg.Limits.MuteSweepSeconds)*time.Second+10*time.Second)
	dog.Register("dispatcher", time.Minute)
	watchdog.SetGlobal(dog)

	return &Components{
		jobQueue:    jobQueue,
		httpPool:    httpPool,
		rateLimiter: rateLimiter,
		workers:     workers,
		dog:         dog,
	}
}

func initializeBot(cfg *config.Config, stores *Stores, components *Components) error {
	fmt.Println("Initializing Discord bot...")

	if err := bot.Initialize(cfg.Bot.Token); err != nil {
		return err
	}

	session := bot.GetSession()
	dg := session.GetDiscord()

	violations := state.NewViolationCounters()
	spam := state.NewSpamTracker(cfg.Limits.SpamLimit, time.Duration(cfg.Limits.SpamIntervalMS)*time.Millisecond)

	muteManager := mute.NewManager(dg, stores.mutes)
	components.sweeper = mute.NewScheduler(muteManager)

	// Handlers must be attached before the gateway opens so no startup
	// event slips past them.
	g := guards.New(dg, stores.whitelist, stores.banCounts, stores.vanity, violations, spam, muteManager, components.jobQueue)
	g.Register()

	// Guards emit embeds from the initial GuildCreate burst, so the notifier
	// needs its session before the gateway opens.
	notifier.SetSession(dg)

	if err := session.Connect(); err != nil {
		return err
	}

	if err := commands.Initialize(session, stores.whitelist, stores.warnings, muteManager, components.jobQueue); err != nil {
		return err
	}

	fmt.Println("Discord bot initialized successfully")
	return nil
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutdown signal received")
}

func stopComponents(components *Components) {
	components.dog.Stop()
	components.sweeper.Stop()
	components.jobQueue.Close()
}
