package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studyloop/studyloop/internal/document"
)

func newExtractCommand() *cobra.Command {
	var outputPath string

	command := &cobra.Command{
		Use:   "extract <document>",
		Short: "Extract study topics from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			documentPath := args[0]
			doc, err := document.ReaderFor(documentPath).Read(documentPath)
			if err != nil {
				return fmt.Errorf("document.Read() > %w", err)
			}

			topics, err := newExtractor(cfg).Extract(context.Background(), doc.Text)
			if err != nil {
				return fmt.Errorf("Extract() > %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d topics from %s:\n", len(topics), doc.Name)
			printTopics(cmd.OutOrStdout(), topics)

			if outputPath != "" {
				if err := writeTopicsFile(outputPath, topics); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nTopics written to %s\n", outputPath)
			}
			return nil
		},
	}

	command.Flags().StringVar(&outputPath, "output", "", "Write extracted topics as YAML to this path")

	return command
}
