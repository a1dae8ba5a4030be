package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/gdrive-tools/gsync/internal/auth"
	"github.com/gdrive-tools/gsync/internal/config"
	"github.com/gdrive-tools/gsync/internal/drivesdk"
	"github.com/gdrive-tools/gsync/internal/sync"
	"github.com/gdrive-tools/gsync/internal/utils"
	"github.com/gdrive-tools/gsync/internal/version"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	red   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	green = color.New(color.FgHiGreen).SprintFunc()
	cyan  = color.New(color.FgHiCyan).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:     "gsync <remote-path> <local-path> <fetch|push>",
	Short:   "Syncing tool for Google Drive",
	Long:    "gsync reconciles a local directory tree with a Google Drive folder:\n'fetch' pulls remote changes into the local mirror, 'push' uploads local\nchanges back, preserving native document formats across export round trips.",
	Version: version.Detailed(),
	Args:    cobra.ExactArgs(3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: runSync,
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().Bool("pdf", false, "export every native document as PDF")
	rootCmd.Flags().String("db", "", "identity database path (default "+config.DefaultDBPath+")")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "gsync config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func main() {
	setupLogger(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("ERROR"), err)
		os.Exit(1)
	}
}

func setupLogger(level slog.Level) {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))
}

func loadConfig(cmd *cobra.Command) error {
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.SetConfigFile(config.DefaultConfigPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.BindPFlag("always_pdf", cmd.Flags().Lookup("pdf"))
	if dbFlag := cmd.Flags().Lookup("db"); dbFlag != nil && dbFlag.Changed {
		viper.BindPFlag("db_path", dbFlag)
	}

	viper.SetEnvPrefix("GSYNC")
	viper.AutomaticEnv()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		setupLogger(slog.LevelDebug)
	}

	return nil
}

func configFromViper() *config.Config {
	cfg := config.Default()
	if v := viper.GetString("credentials_path"); v != "" {
		cfg.CredentialsPath = v
	}
	if v := viper.GetString("token_path"); v != "" {
		cfg.TokenPath = v
	}
	if v := viper.GetString("db_path"); v != "" {
		cfg.DBPath = v
	}
	cfg.AlwaysPDF = viper.GetBool("always_pdf")
	cfg.Path = viper.ConfigFileUsed()
	return cfg
}

func runSync(cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	localArg := args[1]
	action := args[2]

	if action != "fetch" && action != "push" {
		return fmt.Errorf("unknown action %q, expected fetch or push", action)
	}

	cfg := configFromViper()
	if err := cfg.Validate(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	localPath, err := utils.ResolvePath(localArg)
	if err != nil {
		return fmt.Errorf("resolve local path: %w", err)
	}

	ctx := cmd.Context()

	provider, err := auth.NewProvider(cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return err
	}
	ts, err := provider.TokenSource(ctx)
	if err != nil {
		return err
	}

	sdk := drivesdk.New(ts)
	defer sdk.Close()

	store := sync.NewIdentityStore(cfg.DBPath)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	engine := sync.NewEngine(sdk.Files, store, cfg)

	root, err := engine.ResolveRemotePath(ctx, remotePath)
	if err != nil {
		return err
	}

	switch action {
	case "fetch":
		fmt.Printf("Fetching %s -> %s\n", cyan(remotePath), localPath)
		err = engine.Fetch(ctx, root, localPath)
	case "push":
		fmt.Printf("Pushing %s -> %s\n", localPath, cyan(remotePath))
		err = engine.Push(ctx, root, localPath)
	}
	if err != nil {
		return err
	}

	printStats(action, engine.Stats())
	return nil
}

func printStats(action string, s sync.Stats) {
	if action == "fetch" {
		fmt.Printf("%s downloaded=%d skipped=%d failed=%d\n", green("Done."), s.Downloaded, s.Skipped, s.Failed)
		return
	}
	fmt.Printf("%s uploaded=%d updated=%d folders=%d skipped=%d failed=%d\n",
		green("Done."), s.Uploaded, s.Updated, s.Created, s.Skipped, s.Failed)
}
