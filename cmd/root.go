package cmd

import (
	"context"

	"github.com/google/uuid"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var levels = []logrus.Level{logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel}

// log carries the run id; set up before any command runs.
var log = logrus.NewEntry(logrus.StandardLogger())

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "labelgen",
	Short: "Build HTS context labels from annotated speech corpora",
	Long: `labelgen walks the annotated utterances of a corpus and writes, for each
one, the context-dependent label file used to train statistical speech
synthesis models. It also extracts the audio and generates the matching
question file.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	viper.SetEnvPrefix("labelgen")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("config", "", "configuration document (tier names, alphabets, ignore list)")
	rootCmd.PersistentFlags().CountP("verbosity", "v", "increase output verbosity")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file, rotated")
	rootCmd.PersistentFlags().IntP("nb-proc", "p", 1, "number of utterances processed in parallel")
	rootCmd.PersistentFlags().String("metrics-file", "", "write run metrics in Prometheus text format to this file")

	for key, flag := range map[string]string{
		"config":       "config",
		"verbosity":    "verbosity",
		"log_file":     "log-file",
		"nb_proc":      "nb-proc",
		"metrics_file": "metrics-file",
	} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(labelsCmd, wavCmd, questionsCmd, packCmd)
}

func setupLogging(*cobra.Command, []string) error {
	if path := viper.GetString("log_file"); path != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    50, // MB
			MaxBackups: 5,
			Compress:   true,
		})
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	v := viper.GetInt("verbosity")
	if v >= len(levels) {
		logrus.SetLevel(levels[len(levels)-1])
		logrus.Warnf("verbosity %d is too high, using %s", v, levels[len(levels)-1])
	} else if v >= 0 {
		logrus.SetLevel(levels[v])
	}

	log = logrus.WithField("run", uuid.NewString())
	return nil
}
