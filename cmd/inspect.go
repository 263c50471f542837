package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/jsphweid/engraver/midi"
	"github.com/jsphweid/engraver/model"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/jsphweid/engraver/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <score.yaml | file.mid>",
	Short: "Inspects a score or MIDI file",
	Long:  `Prints the movements, bars and channels of a score, or the tracks and chords of a MIDI file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch filepath.Ext(args[0]) {
		case ".mid", ".midi":
			return inspectMidi(args[0])
		}
		return inspectScore(args[0])
	},
}

func inspectScore(path string) error {
	s, err := scorefile.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("title: %v\n", s.Title)
	fmt.Printf("composer: %v\n", s.Meta.Composer)
	for i, mv := range s.Movement {
		fmt.Printf("movement %v: %v bars, %v channels, sig %+v\n", i, len(mv.Bar), s.NumChannels(i), mv.Sig)
		var counts []int
		for j, bar := range mv.Bar {
			for k, ch := range bar.Chan {
				counts = append(counts, len(ch.Notes))
				notes := model.FormatChannel(ch.Notes)
				if notes == "" {
					notes = "(rest)"
				}
				fmt.Printf("  %v:%v: %v\n", j, k, notes)
			}
		}
		fmt.Printf("markings: %v\n", util.Sum(counts))
	}
	return nil
}

func inspectMidi(path string) error {
	mf, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("time format: %v\n", mf.TimeFormat)
	fmt.Printf("tracks: %v\n", len(mf.Tracks))
	fmt.Printf("notes: %v\n", midi.CountNotes(mf))
	for _, c := range midi.Chords(mf) {
		fmt.Printf("%v: %v\n", c.Ticks, c.Keys)
	}
	return nil
}
