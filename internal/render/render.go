// Package render writes search results as a table, TSV or bare magnet links.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/franz/tnt-search/internal/format"
	"github.com/franz/tnt-search/internal/store"
	"github.com/rivo/uniseg"
)

// Header is the table header, one entry per column
var Header = []string{"SIZE", "LINK", "TITLE", "DESCRIPTION"}

// columnGap separates table columns
const columnGap = "  "

// Options selects the output style
type Options struct {
	HumanReadable bool // format sizes as "1.5 GiB" and right-align them
	LinkOnly      bool // one magnet link per line, nothing else
	TSV           bool // tab separated, no header, no padding
}

// Row is one rendered result: the stored projection plus the derived link
type Row struct {
	Size        string
	Link        string
	Title       string
	Description string
}

// Rows converts releases into display rows in the order given
func Rows(releases []store.Release, humanReadable bool) []Row {
	rows := make([]Row, len(releases))
	for i, r := range releases {
		size := strconv.FormatInt(r.Size, 10)
		if humanReadable {
			size = format.FormatSize(r.Size)
		}
		rows[i] = Row{
			Size:        size,
			Link:        format.MagnetLink(r.Hash),
			Title:       r.Title,
			Description: r.Description,
		}
	}
	return rows
}

// Render writes releases to w. An empty result writes nothing at all.
func Render(w io.Writer, releases []store.Release, opts Options) error {
	if len(releases) == 0 {
		return nil
	}

	rows := Rows(releases, opts.HumanReadable)
	bw := bufio.NewWriter(w)

	switch {
	case opts.LinkOnly:
		for _, row := range rows {
			fmt.Fprintln(bw, row.Link)
		}
	case opts.TSV:
		for _, row := range rows {
			fmt.Fprintln(bw, strings.Join(cells(row), "\t"))
		}
	default:
		writeTable(bw, rows, opts.HumanReadable)
	}

	return bw.Flush()
}

// cells returns the row's columns with line breaks and tabs flattened
func cells(row Row) []string {
	return []string{
		flatten(row.Size),
		flatten(row.Link),
		flatten(row.Title),
		flatten(row.Description),
	}
}

var flattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func flatten(s string) string {
	return flattener.Replace(s)
}

// writeTable pads every column to its widest cell, measured in terminal
// cells so accented and wide titles line up. The size column is
// right-aligned when sizes are human readable.
func writeTable(w io.Writer, rows []Row, rightAlignSize bool) {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, Header)
	for _, row := range rows {
		table = append(table, cells(row))
	}

	widths := make([]int, len(Header))
	for _, line := range table {
		for col, cell := range line {
			if width := uniseg.StringWidth(cell); width > widths[col] {
				widths[col] = width
			}
		}
	}

	var sb strings.Builder
	for _, line := range table {
		sb.Reset()
		for col, cell := range line {
			if col > 0 {
				sb.WriteString(columnGap)
			}
			pad := strings.Repeat(" ", widths[col]-uniseg.StringWidth(cell))
			if col == 0 && rightAlignSize {
				sb.WriteString(pad)
				sb.WriteString(cell)
			} else {
				sb.WriteString(cell)
				sb.WriteString(pad)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
	}
}
