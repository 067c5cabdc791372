package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/franz/tnt-search/internal/importer"
	"github.com/franz/tnt-search/internal/store"
	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import DUMP",
	Short: "Import the TNT Village dump file",
	Long: `Import the TNT Village release dump (CSV) into a fresh store.

The store is rebuilt from scratch. If it already exists you are asked
before it is replaced, unless --force is given.

Rows with an empty hash, a malformed date or a non-numeric size are
skipped and reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolP("force", "f", false, "if the store already exists, remove it")
	importCmd.Flags().Int("batch-size", defaultBatchSize, "rows inserted per transaction")

	viper.BindPFlag(keyBatchSize, importCmd.Flags().Lookup("batch-size"))
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dumpPath := args[0]
	force, _ := cmd.Flags().GetBool("force")

	dbPath, err := storePath()
	if err != nil {
		return err
	}
	rows, err := batchSize()
	if err != nil {
		return err
	}

	if _, err := os.Stat(dumpPath); err != nil {
		return fmt.Errorf("cannot read dump: %w", err)
	}

	if err := importer.PrepareTarget(dbPath, force); err != nil {
		if !errors.Is(err, util.ErrStoreExists) {
			return err
		}
		question := fmt.Sprintf("%s already exists, do you want to overwrite it?", dbPath)
		if !util.IsTerminal(os.Stdin.Fd()) || !confirm(os.Stdin, cmd.ErrOrStderr(), question) {
			util.WarnLog("Import cancelled, %s left untouched (use --force to replace it)", dbPath)
			return nil
		}
		if err := importer.PrepareTarget(dbPath, true); err != nil {
			return err
		}
	}

	util.DebugLog("Connecting to %q...", dbPath)
	db, err := store.Create(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer db.Close()

	util.InfoLog("Importing magnets from %s...", dumpPath)
	start := time.Now()

	im := importer.New(&importer.Config{
		Store:     db,
		BatchSize: rows,
		Progress:  true,
	})

	result, err := im.ImportFile(ctx, dumpPath)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	count, err := db.Count(ctx)
	if err != nil {
		return err
	}

	if result.Skipped > 0 {
		util.WarnLog("Skipped %s malformed rows", humanize.Comma(result.Skipped))
		for _, e := range result.Errors {
			util.WarnLog("  %v", e)
		}
	}
	util.SuccessLog("Imported %s magnets in %v", humanize.Comma(count), time.Since(start).Round(time.Millisecond))

	return nil
}

// confirm asks a yes/no question; anything but y/yes is no
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
