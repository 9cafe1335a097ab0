package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"slidedeck/internal/export"
	"slidedeck/internal/workflow"
)

type extractOutput struct {
	Document string   `json:"document"`
	Titles   string   `json:"titles"`
	Lines    []string `json:"lines"`
	SavedTo  string   `json:"saved_to,omitempty"`
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var save bool
	var output string
	var asJSON bool
	var asTable bool

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract slide titles from a .pptx file",
		Long: "Upload a .pptx file to the extraction service and print the slide titles it returns.\n" +
			"With --save the titles are also written to slide-titles.txt; --output - streams that file to stdout instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			controller, _, err := ctx.newController(output, out)
			if err != nil {
				return err
			}

			if err := selectPath(cmd.Context(), controller, args[0]); err != nil {
				return err
			}
			if err := controller.Submit(cmd.Context()); err != nil {
				return err
			}
			snap := controller.Snapshot()

			toStdout := strings.TrimSpace(output) == stdoutTarget
			var artifact export.Artifact
			if save || output != "" {
				if artifact, err = controller.Export(cmd.Context()); err != nil {
					return err
				}
			}
			if toStdout {
				return nil
			}

			if asJSON {
				return writeJSON(cmd, extractOutput{
					Document: snap.Document,
					Titles:   snap.Titles,
					Lines:    workflow.TitleLines(snap.Titles),
					SavedTo:  artifact.Location,
				})
			}
			renderTitles(out, snap.Titles, asTable)
			if artifact.Location != "" {
				fmt.Fprintf(out, "Saved %s to %s\n", artifact.Filename, artifact.Location)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the titles to slide-titles.txt in the export directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for slide-titles.txt, or - for stdout (implies --save)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "Render titles as a numbered table")
	cmd.MarkFlagsMutuallyExclusive("json", "table")
	return cmd
}

// renderTitles prints the extraction result verbatim or as a table.
func renderTitles(out io.Writer, titles string, asTable bool) {
	if asTable {
		fmt.Fprintln(out, renderTitlesTable(titles))
		return
	}
	fmt.Fprint(out, titles)
	if titles != "" && !strings.HasSuffix(titles, "\n") {
		fmt.Fprintln(out)
	}
}
