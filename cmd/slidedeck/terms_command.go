package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const termsOfUse = "This application does not save your PPT after use--it is deleted immediately after creating the text file.\n" +
	"Text files are only available to the person who uploads them. They are also deleted after use."

func newTermsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "terms",
		Short:       "Show the terms of use",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader("terms of use", shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, termsOfUse)
			return nil
		},
	}
}
