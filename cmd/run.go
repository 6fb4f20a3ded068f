package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maastricht-university/labelgen/annotation"
	cfg "github.com/maastricht-university/labelgen/config"
	"github.com/maastricht-university/labelgen/orchestrator"
)

var labelsCmd = &cobra.Command{
	Use:   "labels <corpus> <output_dir>",
	Short: "Write one HTS label file per utterance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(cmd, args[0], args[1], func(conf *cfg.Root) orchestrator.Job {
			return orchestrator.LabelJob{Roles: conf.Roles(), Params: conf.Params()}
		})
	},
}

var wavCmd = &cobra.Command{
	Use:   "wav <corpus> <output_dir>",
	Short: "Copy the audio file of every utterance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJob(cmd, args[0], args[1], func(conf *cfg.Root) orchestrator.Job {
			return orchestrator.SignalJob{Roles: conf.Roles(), BaseDir: signalBase(args[0])}
		})
	},
}

// signalBase resolves relative signal paths next to a local corpus.
func signalBase(location string) string {
	fi, err := os.Stat(location)
	if err != nil {
		return ""
	}
	if fi.IsDir() {
		return location
	}
	return filepath.Dir(location)
}

func runJob(cmd *cobra.Command, location, outDir string, newJob func(*cfg.Root) orchestrator.Job) error {
	conf, err := cfg.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	corpus, err := annotation.Open(ctx, location)
	if err != nil {
		return err
	}
	defer corpus.Close()

	var metrics *orchestrator.Metrics
	metricsFile := viper.GetString("metrics_file")
	if metricsFile != "" {
		metrics = orchestrator.NewMetrics()
	}

	p := orchestrator.NewPipeline(conf, corpus, orchestrator.Options{
		Workers: viper.GetInt("nb_proc"),
		Metrics: metrics,
		Log:     log.WithField("corpus", location),
	})
	sum, err := p.Run(ctx, newJob(conf), outDir)
	if err != nil {
		return err
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			log.WithError(err).Warn("metrics not written")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d done, %d failed, %d ignored in %s\n",
		sum.Job, sum.Count(orchestrator.Done), sum.Count(orchestrator.Failed), len(sum.Skipped), sum.Elapsed.Round(time.Millisecond))
	if failed := sum.Failed(); len(failed) > 0 {
		log.WithFields(logrus.Fields{"ids": failed}).Warn("failed utterances can be re-run by ignoring the others")
	}
	return nil
}
