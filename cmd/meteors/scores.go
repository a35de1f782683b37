package main

import (
	"fmt"
	"io"

	"github.com/plus3/meteors/scores"
	"github.com/spf13/cobra"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high score table",
	Args:  cobra.NoArgs,
	RunE:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	store, err := scores.Open(cfg.ScoresPath())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scores cleared.")
		return nil
	}

	entries, err := store.Top(cfg.Scores.Limit)
	if err != nil {
		return err
	}
	printScores(cmd.OutOrStdout(), entries)
	return nil
}

func printScores(w io.Writer, entries []scores.Entry) {
	fmt.Fprintln(w, "High Scores - Meteors")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-4s  %s\n", "Rank", "Score", "Wave", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-4s  %s\n", "----", "-----", "----", "----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-8d  %-4d  %s\n", i+1, e.Score, e.Wave, e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
