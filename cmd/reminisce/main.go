// Package main provides the CLI entrypoint for reminisce.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reminisce/internal/config"
	"github.com/verte-zerg/reminisce/internal/content"
	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/games"
	"github.com/verte-zerg/reminisce/internal/generator"
	"github.com/verte-zerg/reminisce/internal/logging"
	"github.com/verte-zerg/reminisce/internal/model"
	"github.com/verte-zerg/reminisce/internal/server"
	"github.com/verte-zerg/reminisce/internal/stats"
	"github.com/verte-zerg/reminisce/internal/statsui"
	"github.com/verte-zerg/reminisce/internal/store"
	"github.com/verte-zerg/reminisce/internal/tui"
)

const (
	defaultPace         = 1.0
	defaultStudySeconds = 30
	defaultAddr         = ":8080"
	defaultOrigin       = "http://localhost:5173"
)

var (
	playLevel        string
	playPace         float64
	playSeed         int64
	playStudySeconds int
	playRecord       bool
	playContent      string

	serveAddr   string
	serveOrigin string

	historyGame  string
	historySince string
	historyLast  int
	historyPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reminisce",
		Short:         "Cognitive therapy mini-games",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}
	addPlayFlags(rootCmd)

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&playLevel, "level", "", "difficulty level name or number")
	cmd.Flags().Float64Var(&playPace, "pace", defaultPace, "multiplier for every feedback delay")
	cmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed for shuffles (0 = time based)")
	cmd.Flags().IntVar(&playStudySeconds, "study-seconds", defaultStudySeconds, "how long the memory tray is shown (0 = until ready)")
	cmd.Flags().BoolVar(&playRecord, "record", false, "record resolved rounds to the local journal")
	cmd.Flags().StringVar(&playContent, "content", "", "content pack TOML overriding built-in datasets")
}

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [game]",
		Short: "Play a game directly",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlayCmd,
	}
	addPlayFlags(cmd)
	return cmd
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	envCfg, fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	game := ""
	if len(args) == 1 {
		game = args[0]
	} else if fileCfg.Play.Game != nil && cmd.Name() == "play" {
		game = *fileCfg.Play.Game
	}
	cfg, err := resolvePlayConfig(cmd, game, fileCfg.Play, envCfg)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(envCfg.LogLevel)
	if err != nil {
		return err
	}
	logger, closer, err := logging.File(config.DefaultLogPath(), level)
	if err != nil {
		logErrf("failed to open log file: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				// Best-effort log file close.
				_ = cerr
			}
		}()
	}

	defs, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	levelIdx := 0
	if cfg.Game != "" {
		def, ok := games.Lookup(defs, cfg.Game)
		if !ok {
			return unknownGameError(cfg.Game, defs)
		}
		if levelIdx, err = def.LevelIndex(cfg.Level); err != nil {
			return fmt.Errorf("%s: level %q: %w", def.ID, cfg.Level, err)
		}
	}

	recorder, closeStore, err := openRecorder(cfg.Record, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	m, err := tui.NewModel(tui.Config{
		Games:    defs,
		Start:    cfg.Game,
		Level:    levelIdx,
		Source:   generator.NewSeeded(cfg.Seed),
		Recorder: recorder,
		Log:      logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List available games",
		Args:  cobra.NoArgs,
		RunE:  runGamesCmd,
	}
}

func runGamesCmd(cmd *cobra.Command, _ []string) error {
	envCfg, fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg, err := resolvePlayConfig(cmd, "", fileCfg.Play, envCfg)
	if err != nil {
		return err
	}
	defs, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	return writeGames(cmd.OutOrStdout(), defs)
}

func writeGames(w io.Writer, defs []games.Definition) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME\tLEVELS\tDESCRIPTION"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, def := range defs {
		levels := make([]string, 0, len(def.Levels))
		for _, lvl := range def.Levels {
			levels = append(levels, lvl.Name)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.ID, def.Name, strings.Join(levels, ","), def.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return tw.Flush()
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game engine over HTTP for a rendering surface",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&serveOrigin, "origin", defaultOrigin, "allowed CORS origin")
	addPlayFlags(cmd)
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	envCfg, fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	playCfg, err := resolvePlayConfig(cmd, "", fileCfg.Play, envCfg)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)
	applyStringConfig(cmd, "addr", &serveAddr, nonEmpty(envCfg.Addr))
	applyStringConfig(cmd, "origin", &serveOrigin, fileCfg.Serve.Origin)
	applyStringConfig(cmd, "origin", &serveOrigin, nonEmpty(envCfg.Origin))
	serveCfg := model.ServeConfig{Addr: serveAddr, Origin: serveOrigin}
	if serveCfg.Addr == "" {
		return fmt.Errorf("--addr must not be empty")
	}

	level, err := logging.ParseLevel(envCfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.Console(os.Stderr, level)

	defs, err := loadCatalog(playCfg)
	if err != nil {
		return err
	}
	recorder, closeStore, err := openRecorder(playCfg.Record, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := playCfg.Seed
	srv := server.New(server.Config{
		Games:    defs,
		Origin:   serveCfg.Origin,
		Log:      logger,
		Recorder: recorder,
		Source: func() engine.Source {
			return generator.NewSeeded(seed)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Start(ctx, serveCfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the round journal",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyGame, "game", "", "game id filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain table instead of the browser")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historyGame, historySince, historyLast)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	width := stats.TerminalWidth()
	if historyPlain || width == 0 {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return err
		}
		return stats.RenderReport(cmd.OutOrStdout(), report, width)
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyConfig(game, since string, last int) (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Game: strings.TrimSpace(game), Last: last}
	if last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	path := envCfg.ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func loadConfig() (config.EnvConfig, config.FileConfig, error) {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return config.EnvConfig{}, config.FileConfig{}, err
	}
	fileCfg, err := config.LoadConfig(envCfg.ConfigPath())
	if err != nil {
		return config.EnvConfig{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return envCfg, fileCfg, nil
}

// resolvePlayConfig layers defaults, the config file, the environment and
// explicit flags, in that order.
func resolvePlayConfig(cmd *cobra.Command, game string, file config.PlayConfig, envCfg config.EnvConfig) (model.PlayConfig, error) {
	applyStringConfig(cmd, "level", &playLevel, file.Level)
	applyFloatConfig(cmd, "pace", &playPace, file.Pace)
	applyFloatConfig(cmd, "pace", &playPace, envCfg.Pace)
	applyInt64Config(cmd, "seed", &playSeed, file.Seed)
	applyIntConfig(cmd, "study-seconds", &playStudySeconds, file.StudySeconds)
	applyBoolConfig(cmd, "record", &playRecord, file.Record)
	applyBoolConfig(cmd, "record", &playRecord, envCfg.Record)
	applyStringConfig(cmd, "content", &playContent, file.Content)
	applyStringConfig(cmd, "content", &playContent, nonEmpty(envCfg.Content))

	cfg := model.PlayConfig{
		Game:         strings.TrimSpace(game),
		Level:        playLevel,
		Pace:         playPace,
		Seed:         playSeed,
		StudySeconds: playStudySeconds,
		Record:       playRecord,
		Content:      playContent,
	}
	if err := validatePlayConfig(cfg); err != nil {
		return model.PlayConfig{}, err
	}
	return cfg, nil
}

func validatePlayConfig(cfg model.PlayConfig) error {
	if cfg.Pace <= 0 {
		return fmt.Errorf("--pace must be > 0")
	}
	if cfg.StudySeconds < 0 {
		return fmt.Errorf("--study-seconds must be >= 0")
	}
	return nil
}

func loadCatalog(cfg model.PlayConfig) ([]games.Definition, error) {
	path := cfg.Content
	if path == "" {
		path = config.DefaultContentPath()
	}
	pack, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load content pack %s: %w", path, err)
	}
	opts := games.Options{Pace: cfg.Pace, StudyDelay: time.Duration(cfg.StudySeconds) * time.Second}
	if cfg.StudySeconds == 0 {
		opts.StudyDelay = -1
	}
	return games.Catalog(pack, opts), nil
}

// openRecorder opens the journal when recording is enabled. The returned
// close func flushes pending rounds and is always safe to call.
func openRecorder(enabled bool, logger zerolog.Logger) (*store.Recorder, func(), error) {
	if !enabled {
		return nil, func() {}, nil
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open journal: %w", err)
	}
	recorder := store.NewRecorder(st, logger)
	closeJournal := func() {
		recorder.Close()
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}
	return recorder, closeJournal, nil
}

func unknownGameError(name string, defs []games.Definition) error {
	ids := make([]string, 0, len(defs))
	for _, def := range defs {
		ids = append(ids, def.ID)
	}
	return fmt.Errorf("unknown game %q (available: %s)", name, strings.Join(ids, ", "))
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# reminisce configuration
# Uncomment a value to enable it. CLI flags override config values.
# REMINISCE_* environment variables override the file.

[play]
# game = "memory-tray"    # Game opened by "reminisce play" without an argument
# level = "easy"          # Difficulty level name or number
# pace = %.1f              # Multiplier for every feedback delay
# seed = 0                # Random seed for shuffles (0 = time based)
# study-seconds = %d      # How long the memory tray is shown (0 = until ready)
# record = false          # Record resolved rounds to the local journal
# content = %q

[serve]
# addr = %q
# origin = %q
`,
		defaultPace,
		defaultStudySeconds,
		config.DefaultContentPath(),
		defaultAddr,
		defaultOrigin,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
