package main

import (
	"fmt"

	"github.com/franz/tnt-search/internal/query"
	"github.com/franz/tnt-search/internal/search"
	"github.com/franz/tnt-search/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var searchCmd = &cobra.Command{
	Use:   "search KEYWORD",
	Short: "Search releases by title and description",
	Long: `Search the store for releases whose title or description matches KEYWORD.

By default KEYWORD is a case-insensitive substring. With --glob it is a
shell pattern (*, ?, [...]) that must match the whole field.

Results are sorted by title. The exit status is 1 when nothing matched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("mode", "substring", "match mode: substring or glob")
	searchCmd.Flags().BoolP("glob", "g", false, "shorthand for --mode glob")
	searchCmd.Flags().BoolP("case-sensitive", "s", false, "match case exactly")
	searchCmd.Flags().BoolP("ignore-case", "i", false, "ignore case distinctions (the default)")
	searchCmd.Flags().BoolP("human-readable", "H", false, "show sizes as KiB/MiB/GiB")
	searchCmd.Flags().BoolP("link-only", "l", false, "print only the magnet links")
	searchCmd.Flags().Bool("tsv", false, "print tab separated rows without a header")

	viper.BindPFlag(keyMode, searchCmd.Flags().Lookup("mode"))
	viper.BindPFlag("search.case-sensitive", searchCmd.Flags().Lookup("case-sensitive"))
	viper.BindPFlag("search.human-readable", searchCmd.Flags().Lookup("human-readable"))
	viper.BindPFlag("search.link-only", searchCmd.Flags().Lookup("link-only"))
	viper.BindPFlag("search.tsv", searchCmd.Flags().Lookup("tsv"))
}

// searchOptions resolves flags, environment and config into search.Options
func searchOptions(cmd *cobra.Command, keyword string) (search.Options, error) {
	opts := search.DefaultOptions(keyword)
	path, err := storePath()
	if err != nil {
		return opts, err
	}
	opts.StorePath = path

	mode, err := query.ParseMode(configString(keyMode, query.Substring.String()))
	if err != nil {
		return opts, err
	}
	if glob, _ := cmd.Flags().GetBool("glob"); glob {
		mode = query.Glob
	}
	opts.Mode = mode

	opts.CaseSensitive = configBool("search.case-sensitive")
	if ignoreCase, _ := cmd.Flags().GetBool("ignore-case"); ignoreCase {
		if cmd.Flags().Changed("case-sensitive") && opts.CaseSensitive {
			return opts, fmt.Errorf("%w: --ignore-case and --case-sensitive are mutually exclusive", util.ErrInvalidConfig)
		}
		opts.CaseSensitive = false
	}

	opts.HumanReadable = configBool("search.human-readable")
	opts.LinkOnly = configBool("search.link-only")
	opts.TSV = configBool("search.tsv")
	if opts.LinkOnly && opts.TSV {
		return opts, fmt.Errorf("%w: --link-only and --tsv are mutually exclusive", util.ErrInvalidConfig)
	}

	return opts, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptions(cmd, args[0])
	if err != nil {
		return err
	}

	res, err := search.Run(cmd.Context(), opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	util.DebugLog("%d releases matched", res.Matches)
	return nil
}
