package main

import (
	"fmt"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/duttty/wallrotate/wallpaper"
)

var usageJSON bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show how often each cached image has been used",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings()
		if err != nil {
			return err
		}
		ledger, err := wallpaper.OpenLedger(s.UsagePath)
		if err != nil {
			return err
		}
		return writeUsage(cmd.OutOrStdout(), ledger.Snapshot(), s.Cap, usageJSON)
	},
}

func init() {
	usageCmd.Flags().BoolVarP(&usageJSON, "json", "j", false, "Output as JSON")
}

type usageEntry struct {
	ID   string `json:"id"`
	Uses int    `json:"uses"`
	Left int    `json:"left"`
}

func writeUsage(w io.Writer, counts map[string]int, limit int, asJSON bool) error {
	entries := make([]usageEntry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, usageEntry{ID: id, Uses: n, Left: max(limit-n, 0)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	if asJSON {
		b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no cached images")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%-24s %d/%d\n", e.ID, e.Uses, limit); err != nil {
			return err
		}
	}
	return nil
}
