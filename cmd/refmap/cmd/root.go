// Package cmd implements the refmap command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Hamza203508/refmap/internal/config"
	"github.com/Hamza203508/refmap/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "refmap",
	Short: "Referendum results by region",
	Long: `Refmap reconciles a referendum vote export with the region and
department reference tables, aggregates vote counts per region, and renders
the Choice-A ratio as a choropleth map.

Input paths default to the data/ directory and can be overridden per file
via flags, config file (.refmap.yaml) or environment variables.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is ./.refmap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Minimal output")

	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir,
		"Directory holding the input files")
	rootCmd.PersistentFlags().String("referendum", "",
		"Referendum CSV path (overrides data-dir)")
	rootCmd.PersistentFlags().String("regions", "",
		"Regions CSV path (overrides data-dir)")
	rootCmd.PersistentFlags().String("departments", "",
		"Departments CSV path (overrides data-dir)")
	rootCmd.PersistentFlags().String("geometry", "",
		"Region geometry GeoJSON path (overrides data-dir)")
	rootCmd.PersistentFlags().String("out-dir", ".",
		"Directory for generated artifacts")

	bindings := map[string]string{
		"data.dir":         "data-dir",
		"data.referendum":  "referendum",
		"data.regions":     "regions",
		"data.departments": "departments",
		"data.geometry":    "geometry",
		"output.dir":       "out-dir",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".refmap")
	}

	// .env before Viper env binding so both see the same environment.
	loadEnvFiles()

	viper.SetEnvPrefix("refmap")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	cfg := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    "stderr",
		AddCaller: level <= zerolog.DebugLevel,
	}
	if cfg.Format == "" {
		cfg.Format = "auto"
	}
	logging.Configure(cfg)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}
