package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Word list utilities",
}

var commonFlags struct {
	top  int
	freq string
	out  string
}

var wordsCommonCmd = &cobra.Command{
	Use:   "common",
	Short: "Write the most frequent five-letter words, one per line",
	Args:  cobra.NoArgs,
	RunE:  runWordsCommon,
}

var wordsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the sizes of the configured word lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lists, err := loadLists()
		if err != nil {
			return err
		}
		s, a := lists.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "secrets: %d\nallowed: %d\n", s, a)
		return nil
	},
}

func init() {
	f := wordsCommonCmd.Flags()
	f.IntVar(&commonFlags.top, "top", 4500, "How many words to keep (default: $WORDS_COMMON_TOP or 4500)")
	f.StringVar(&commonFlags.freq, "freq", "", "Word frequency JSON (default: $WORDS_FREQ_FILE)")
	f.StringVarP(&commonFlags.out, "out", "o", "", "Output file (default: stdout)")

	wordsCmd.AddCommand(wordsCommonCmd)
	wordsCmd.AddCommand(wordsStatsCmd)
}

func runWordsCommon(cmd *cobra.Command, _ []string) error {
	path := commonFlags.freq
	if path == "" {
		path = cfg.FreqFile
	}
	if path == "" {
		return fmt.Errorf("a frequency file is required (--freq or WORDS_FREQ_FILE)")
	}
	if cfg.CommonTop > 0 && !cmd.Flags().Changed("top") {
		commonFlags.top = cfg.CommonTop
	}
	freq, err := words.ReadFrequencies(path)
	if err != nil {
		return err
	}
	list := words.MostCommon(freq, commonFlags.top)

	if commonFlags.out == "" {
		return words.Write(cmd.OutOrStdout(), list)
	}
	f, err := os.Create(commonFlags.out)
	if err != nil {
		return err
	}
	if err := writeList(f, list); err != nil {
		return fmt.Errorf("write %s: %w", commonFlags.out, err)
	}
	log.Info().Str("path", commonFlags.out).Int("words", len(list)).Msg("common words written")
	return nil
}

func writeList(f io.WriteCloser, list []string) error {
	if err := words.Write(f, list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
