package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/franz/tnt-search/internal/store"
	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the store",
	Long: `Run diagnostic checks to ensure tnt can search.

This command checks:
- SQLite version
- Store file presence and readability
- Store integrity and release count

Use this command to troubleshoot a search that fails to open the store.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== tnt doctor ===")

	dbPath, err := storePath()
	if err != nil {
		return err
	}

	results := []checkResult{
		checkSQLite(),
		checkStore(cmd.Context(), dbPath),
	}

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	if hasErrors {
		return fmt.Errorf("diagnostics failed")
	} else if hasWarnings {
		util.WarnLog("Some checks produced warnings.")
	} else {
		util.SuccessLog("All checks passed, the store is ready to search.")
	}

	return nil
}

// checkSQLite verifies SQLite version
func checkSQLite() checkResult {
	// modernc.org/sqlite is compiled in, no external library involved
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{
			name:    "SQLite",
			error:   true,
			message: "unable to determine version",
		}
	}

	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s (built-in)", version),
	}
}

// checkStore opens the store the way a search does and reports its state
func checkStore(ctx context.Context, dbPath string) checkResult {
	if dbPath == "" {
		return checkResult{
			name:    "Store",
			warning: true,
			message: "no store path specified (use --db flag or config)",
		}
	}

	info, err := os.Stat(dbPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return checkResult{
			name:    "Store",
			error:   true,
			message: fmt.Sprintf("cannot access %s: %v", dbPath, err),
		}
	}

	db, err := store.Open(ctx, dbPath)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, util.ErrStoreNotFound) || errors.Is(err, util.ErrSchemaMissing) {
			msg += ` (run "tnt import DUMP" first)`
		}
		return checkResult{
			name:    "Store",
			error:   true,
			message: msg,
		}
	}
	defer db.Close()

	if err := db.CheckIntegrity(ctx); err != nil {
		return checkResult{
			name:    "Store",
			error:   true,
			message: fmt.Sprintf("integrity check failed: %v", err),
		}
	}

	count, err := db.Count(ctx)
	if err != nil {
		return checkResult{
			name:    "Store",
			error:   true,
			message: err.Error(),
		}
	}

	result := checkResult{
		name:    "Store",
		message: fmt.Sprintf("%s (%s, %s releases)", dbPath, humanize.IBytes(uint64(info.Size())), humanize.Comma(count)),
	}
	if count == 0 {
		result.warning = true
		result.message += ", every search will come back empty"
	}
	return result
}
