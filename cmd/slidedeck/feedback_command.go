package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"slidedeck/internal/export"
	"slidedeck/internal/workflow"
)

type feedbackOutput struct {
	Document   string   `json:"document"`
	Audience   string   `json:"audience"`
	Titles     string   `json:"titles"`
	Feedback   string   `json:"feedback"`
	Paragraphs []string `json:"paragraphs"`
	SavedTo    string   `json:"saved_to,omitempty"`
}

func newFeedbackCommand(ctx *commandContext) *cobra.Command {
	var audience string
	var save bool
	var output string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "feedback FILE",
		Short: "Extract slide titles and request feedback on them",
		Long: "Extract the slide titles of a .pptx file, then ask the feedback service how well\n" +
			"they work for the given audience. A blank audience means \"general audience\".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			target := strings.TrimSpace(output)
			if target == stdoutTarget {
				return errors.New("--output - is not supported with feedback; use extract --output - instead")
			}
			controller, _, err := ctx.newController(target, out)
			if err != nil {
				return err
			}

			if err := selectPath(cmd.Context(), controller, args[0]); err != nil {
				return err
			}
			if err := controller.Submit(cmd.Context()); err != nil {
				return err
			}
			if err := controller.RequestFeedback(cmd.Context(), audience); err != nil {
				return err
			}
			snap := controller.Snapshot()

			var artifact export.Artifact
			if save || target != "" {
				if artifact, err = controller.Export(cmd.Context()); err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd, feedbackOutput{
					Document:   snap.Document,
					Audience:   workflow.NormalizeAudience(audience),
					Titles:     snap.Titles,
					Feedback:   snap.FeedbackText,
					Paragraphs: snap.Paragraphs,
					SavedTo:    artifact.Location,
				})
			}
			renderFeedback(out, snap.Paragraphs)
			if artifact.Location != "" {
				fmt.Fprintf(out, "Saved %s to %s\n", artifact.Filename, artifact.Location)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&audience, "audience", "a", "", "Target audience for the feedback")
	cmd.Flags().BoolVar(&save, "save", false, "Also save the titles to slide-titles.txt")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory for slide-titles.txt (implies --save)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the result as JSON")
	return cmd
}

// renderFeedback prints one paragraph per line; blank paragraphs stay blank.
func renderFeedback(out io.Writer, paragraphs []string) {
	for _, paragraph := range paragraphs {
		fmt.Fprintln(out, paragraph)
	}
}
