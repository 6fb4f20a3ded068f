package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cfg "github.com/maastricht-university/labelgen/config"
	"github.com/maastricht-university/labelgen/questions"
)

var questionsOut string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Write the HTS question file for the configured alphabets",
	Args:  cobra.NoArgs,
	RunE:  runQuestions,
}

func runQuestions(cmd *cobra.Command, _ []string) (err error) {
	conf, err := cfg.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if questionsOut != "" {
		f, err := os.Create(questionsOut)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	g := questions.NewGenerator(w, conf.Alphabet, conf.Params().NssReplacements)
	if err := g.WriteAll(); err != nil {
		return err
	}
	log.WithField("categories", len(conf.Alphabet.Phonemes)).Info("questions written")
	return nil
}

func init() {
	questionsCmd.Flags().StringVarP(&questionsOut, "output", "o", "", "output file (default stdout)")
}
