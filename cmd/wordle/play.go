package main

import (
	"math/rand"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/wordle/internal/config"
	"github.com/robalobadob/wordle/apps/wordle/internal/play"
	"github.com/robalobadob/wordle/apps/wordle/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetInt64("seed")
		noColor, _ := cmd.Flags().GetBool("no-color")

		cfg := config.Load()
		dict, err := words.Load(cfg.Words.AnswersFile, cfg.Words.AllowedFile)
		if err != nil {
			return err
		}

		// A fixed seed replays the same secret, which makes games reproducible.
		rng := words.CryptoSource()
		if cmd.Flags().Changed("seed") {
			rng = rand.New(rand.NewSource(seed))
		}

		profile := termenv.ColorProfile()
		if noColor {
			profile = termenv.Ascii
		}
		s := &play.Session{
			Dict:    dict,
			In:      os.Stdin,
			Out:     os.Stdout,
			Profile: profile,
		}
		_, err = s.Run(dict.PickSecret(rng))
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Int64("seed", 0, "Seed for picking the secret word")
	playCmd.Flags().Bool("no-color", false, "Disable coloured tiles")
}
