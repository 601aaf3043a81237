package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newQuestionnairesCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "questionnaires",
		Short: "List the questionnaires in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestionnaires(cmd.OutOrStdout(), catalogPath)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: built-in catalog)")

	return cmd
}

func runQuestionnaires(out io.Writer, catalogPath string) error {
	catalog, err := loadCatalog(catalogPath)
	if err != nil {
		return exitError(exitLoadFailure, "failed to load catalog: %v", err)
	}

	for _, id := range catalog.IDs() {
		config, _ := catalog.Get(id)
		names := make([]string, 0, len(config.Sections))
		for _, section := range config.Sections {
			names = append(names, section.Name)
		}
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", id, config.Name, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}
