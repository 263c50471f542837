package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jsphweid/engraver/editor"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	editOut string
	editSVG string
	editNew bool
)

func init() {
	editCmd.Flags().StringVarP(&editOut, "out", "o", "", "where to save the edited score (default overwrite)")
	editCmd.Flags().StringVar(&editSVG, "svg", "", "also engrave the result, highlighting the cursor")
	editCmd.Flags().BoolVar(&editNew, "new", false, "start from an empty score instead of reading one")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <score.yaml> <command>...",
	Short: "Runs editor commands on a score",
	Long: `Runs editor commands on a score, starting with the cursor on the first marking.
Commands: left, right, up-step, down-step, up-half-step, down-half-step,
up-quarter-step, down-quarter-step and dur=<num/den>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var s *score.Score
		if editNew {
			s = score.New(config.Channels)
		} else {
			loaded, err := scorefile.Load(args[0])
			if err != nil {
				return err
			}
			s = loaded
		}

		e := editor.New(s)
		for _, command := range args[1:] {
			if err := e.Run(command); err != nil {
				return err
			}
			slog.Debug("ran command", "command", command, "cursor", e.Cursor)
		}
		fmt.Printf("cursor: %v\n", e.Cursor)

		out := editOut
		if out == "" {
			out = args[0]
		}
		if err := scorefile.Save(out, e.Score); err != nil {
			return err
		}
		fmt.Printf("Wrote %v\n", out)

		if editSVG != "" {
			svg, _, err := engraveScore(e.Score, e.Cursor)
			if err != nil {
				return err
			}
			if err := os.WriteFile(editSVG, svg, 0644); err != nil {
				return errors.Wrapf(err, "could not write %v", editSVG)
			}
			fmt.Printf("Wrote %v\n", editSVG)
		}
		return nil
	},
}
