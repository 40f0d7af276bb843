package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"seqcore/config"
	"seqcore/correct"
	"seqcore/fastqio"
	"seqcore/index"
	"seqcore/metrics"
	"seqcore/quality"
	"seqcore/read"
)

var (
	runIn          string
	runRef         string
	runKept        string
	runDiscard     string
	runMetrics     bool
	runPhredOffset int
)

// runCmd corrects a FASTQ file's reads against a reference set, the way
// the teacher's utils/consensus/main.go drives a single-purpose
// correction pass from flags rather than a server loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Error-correct reads in a FASTQ file against a k-mer spectrum and overlap evidence",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runIn, "in", "i", "", "input FASTQ file (required)")
	runCmd.Flags().StringVarP(&runRef, "ref", "r", "", "reference FASTQ file backing the in-memory index (required)")
	runCmd.Flags().StringVarP(&runKept, "kept", "o", "", "output FASTQ file for reads passing QC (required)")
	runCmd.Flags().StringVarP(&runDiscard, "discard", "d", "", "output FASTQ file for reads failing QC (optional)")
	runCmd.Flags().BoolVar(&runMetrics, "metrics", false, "collect and print correction metrics to stderr")
	runCmd.Flags().IntVar(&runPhredOffset, "phred-offset", quality.Offset33, "ASCII phred offset of the input quality strings")
	runCmd.MarkFlagRequired("in")
	runCmd.MarkFlagRequired("ref")
	runCmd.MarkFlagRequired("kept")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(settingsFile, nil)
	if err != nil {
		return err
	}
	dispatcherCfg, err := cfg.Correction.Dispatcher()
	if err != nil {
		return err
	}

	refs, err := fastqio.ReadAll(runRef)
	if err != nil {
		return errors.Wrap(err, "run: loading reference set")
	}
	refSeqs := make([]string, len(refs))
	for i, r := range refs {
		refSeqs[i] = r.Sequence
	}

	dispatcher := &correct.Dispatcher{
		Index:  index.NewMemIndex(refSeqs),
		Config: dispatcherCfg,
	}

	kept, err := fastqio.Create(runKept)
	if err != nil {
		return err
	}
	defer kept.Close()

	var discard *fastqio.Writer
	if runDiscard != "" {
		discard, err = fastqio.Create(runDiscard)
		if err != nil {
			return err
		}
		defer discard.Close()
	}

	var discardSink metrics.Sink
	if discard != nil {
		discardSink = discard
	}
	pp := metrics.NewPostProcessor(kept, discardSink, runMetrics)

	in, err := fastqio.Open(runIn)
	if err != nil {
		return err
	}
	defer in.Close()

	idx := 0
	for {
		r, ok, err := in.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		item := read.WorkItem{Read: r, Index: idx}
		idx++

		if err := r.Validate(); err != nil {
			if discardSink != nil {
				if werr := discardSink.Write(r); werr != nil {
					return werr
				}
			}
			continue
		}

		var phred []int
		if r.Quality != "" {
			phred = quality.Decode(r.Quality, runPhredOffset)
		}

		result, err := dispatcher.Run(r, phred)
		if err != nil {
			return errors.Wrapf(err, "run: correcting read %s", r.Id)
		}

		if err := pp.Process(item, result); err != nil {
			return err
		}
	}

	summary := pp.Close()
	fmt.Fprintln(os.Stderr, summary.String())
	if runMetrics {
		pp.WriteMetrics(os.Stderr)
	}

	return nil
}
