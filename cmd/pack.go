package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/labelgen/annotation"
)

var packCmd = &cobra.Command{
	Use:   "pack <corpus> <database>",
	Short: "Copy a corpus into a single SQLite database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src, err := annotation.Open(ctx, args[0])
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := annotation.CreateSQLite(ctx, args[1])
		if err != nil {
			return err
		}
		defer dst.Close()

		ids, err := src.IDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			utt, err := src.Utterance(ctx, id)
			if err != nil {
				return err
			}
			doc, ok := utt.(*annotation.Document)
			if !ok {
				return fmt.Errorf("utterance %d: %T cannot be packed", id, utt)
			}
			if err := dst.Put(ctx, doc); err != nil {
				return fmt.Errorf("utterance %d: %w", id, err)
			}
			log.WithField("utt", id).Debug("packed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d utterances packed into %s\n", len(ids), args[1])
		return nil
	},
}
