package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/engraver/constants"
	"github.com/jsphweid/engraver/engrave"
	"github.com/jsphweid/engraver/score"
	"github.com/jsphweid/engraver/scorefile"
	"github.com/jsphweid/engraver/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	engraveOut      string
	engraveMovement int
	engraveMaxFiles int
)

func init() {
	engraveCmd.Flags().StringVarP(&engraveOut, "out", "o", "", "output svg path (default out dir)")
	engraveCmd.Flags().IntVarP(&engraveMovement, "movement", "m", 0, "movement to engrave")
	engraveCmd.Flags().IntVar(&engraveMaxFiles, "max-files", 0, "engrave at most this many scores of a directory, 0 for all")
	rootCmd.AddCommand(engraveCmd)
}

var engraveCmd = &cobra.Command{
	Use:   "engrave [score.yaml | dir]",
	Short: "Engraves a score as SVG",
	Long: `Engraves one movement of a score as SVG. Given a directory, engraves every score in it into the out dir.
Without an argument, engraves the score dir (SCORE_DIR).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := engraveInput(args)
		info, err := os.Stat(in)
		if err != nil {
			return errors.Wrap(err, "could not find score")
		}
		if info.IsDir() {
			return engraveAll(in)
		}
		out := engraveOut
		if out == "" {
			if err := os.MkdirAll(constants.GetOutDir(), 0777); err != nil {
				return errors.Wrap(err, "could not create out dir")
			}
			out = outPath(constants.GetOutDir(), in, ".svg")
		}
		return engraveFile(in, out)
	},
}

func engraveInput(args []string) string {
	if len(args) == 0 {
		return constants.GetScoreDir()
	}
	return args[0]
}

// outPath names an output file after a score file, e.g. "a/b.yaml" to
// "<dir>/b.svg".
func outPath(dir, scorePath, ext string) string {
	base := filepath.Base(scorePath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}

func engraveAll(dir string) error {
	outDir := util.RecreateOutputDir()
	paths := util.GatherAllScorePaths(dir, engraveMaxFiles)
	for i, path := range paths {
		fmt.Printf("Engraving %v/%v: %v\n", i+1, len(paths), path)
		if err := engraveFile(path, outPath(outDir, path, ".svg")); err != nil {
			return err
		}
	}
	return nil
}

func engraveFile(in, out string) error {
	s, err := scorefile.Load(in)
	if err != nil {
		return err
	}
	// a cursor before the first measure draws no highlight
	svg, _, err := engraveScore(s, score.NewCursor(engraveMovement, -1, 0, 0))
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, svg, 0644); err != nil {
		return errors.Wrapf(err, "could not write %v", out)
	}
	fmt.Printf("Wrote %v\n", out)
	return nil
}

func layoutOptions() (engrave.Options, error) {
	staff, err := engrave.StaffFor(config.Clef)
	if err != nil {
		return engrave.Options{}, err
	}
	return engrave.Options{
		Staff:      staff,
		Signatures: config.Signatures,
		MaxBars:    config.MaxBars,
	}, nil
}

// engraveScore lays out the cursor's movement with the configured options.
func engraveScore(s *score.Score, cursor score.Cursor) ([]byte, *engrave.Layout, error) {
	opts, err := layoutOptions()
	if err != nil {
		return nil, nil, err
	}
	layout, err := engrave.Movement(s, cursor, cursor.Movement, opts)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := engrave.WriteSVG(&buf, layout); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), layout, nil
}
