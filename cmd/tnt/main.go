package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes follow grep: 1 means the search ran but found nothing
const (
	exitOK        = 0
	exitNoResults = 1
	exitFailure   = 2
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "tnt",
		Short: "Search the TNT Village release dump offline",
		Long: `tnt imports the TNT Village release dump (CSV) into a local SQLite
store and searches it by keyword, printing a table of releases or just
their magnet links.

Run "tnt import DUMP" once, then "tnt search KEYWORD" as often as you like.`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tnt/tnt.yaml or ./tnt.yaml)")
	rootCmd.PersistentFlags().String("db", util.DefaultStorePath(), "store database file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")

	// Bind flags to viper
	viper.BindPFlag(keyDB, rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tnt"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("tnt")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match (TNT_DB, TNT_SEARCH_MODE, ...)
	viper.SetEnvPrefix("TNT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		util.DebugLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	util.SetVerbose(configBool("verbose"))
	util.SetQuiet(configBool("quiet"))
	if configBool("no-color") {
		util.SetColors(false)
	}
	return nil
}

// exitCode maps a command error onto the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, util.ErrNoResults):
		return exitNoResults
	default:
		return exitFailure
	}
}

// reportError logs err with a hint for the failures a user can fix
func reportError(err error) {
	switch {
	case errors.Is(err, util.ErrNoResults):
		util.InfoLog("No releases found")
	case errors.Is(err, util.ErrStoreNotFound), errors.Is(err, util.ErrSchemaMissing):
		util.ErrorLog("%v", err)
		util.ErrorLog(`Please use the "import" command to create it.`)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(err)
	}
	os.Exit(exitCode(err))
}
