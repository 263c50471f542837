package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	exportOut         string
	exportFromMeasure int
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output midi path (default out dir)")
	exportCmd.Flags().IntVar(&exportFromMeasure, "from-measure", 0, "start the export at this measure")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <score.yaml>",
	Short: "Exports a score as a MIDI file",
	Long:  `Exports a score as a Standard MIDI File with one track per channel.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := scorefile.Load(args[0])
		if err != nil {
			return err
		}
		mf, err := midi.Export(s)
		if err != nil {
			return err
		}
		if exportFromMeasure > 0 {
			mf = midi.Excerpt(mf, uint64(exportFromMeasure)*midi.TicksPerMeasure)
		}

		out := exportOut
		if out == "" {
			if err := os.MkdirAll(constants.GetOutDir(), 0777); err != nil {
				return errors.Wrap(err, "could not create out dir")
			}
			out = outPath(constants.GetOutDir(), args[0], ".mid")
		}
		if err := midi.WriteMidiFile(out, mf); err != nil {
			return err
		}
		fmt.Printf("Wrote %v notes to %v\n", midi.CountNotes(mf), out)
		return nil
	},
}
