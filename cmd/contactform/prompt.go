package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format      string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the contact form in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options := []tui.Option{
				tui.WithOutputFormat(tui.ParseOutputFormat(format)),
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithMaxAttempts(maxAttempts),
			}
			if a.promptDriver != nil {
				options = append(options, tui.WithPromptDriver(a.promptDriver))
			}

			out, err := tui.New(options...).Render(contextOrBackground(cmd), contact.NewForm().View(), render.RenderOptions{})
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatPrettyText), "Output format: pretty, json or form")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many invalid answers for one field (0 = unlimited)")
	return cmd
}
