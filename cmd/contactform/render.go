package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/contact"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		submit   bool
		fragment bool
		action   string
	)
	inputs := map[contact.Field]*string{}
	flagNames := map[contact.Field]string{
		contact.FieldFirstName: "first",
		contact.FieldLastName:  "last",
		contact.FieldEmail:     "email",
		contact.FieldMessage:   "message",
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the contact form HTML for the given values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := contact.NewForm()
			for _, spec := range contact.Fields() {
				if !cmd.Flags().Changed(flagNames[spec.Name]) {
					continue
				}
				if err := form.SetValue(spec.Name, *inputs[spec.Name]); err != nil {
					return err
				}
			}
			if submit {
				if _, ok := form.Submit(); !ok {
					a.logger.Debug("contactform: render with validation errors",
						zap.Int("errors", len(form.Errors())),
					)
				}
			}

			options := []vanilla.Option{vanilla.WithDefaultStyles()}
			if fragment {
				options = append(options, vanilla.WithFragment())
			}
			registry := render.NewRegistry()
			renderer, err := vanilla.New(options...)
			if err != nil {
				return err
			}
			if err := registry.Register(renderer); err != nil {
				return err
			}

			out, _, err := registry.Render(contextOrBackground(cmd), "", form.View(), render.RenderOptions{Action: action})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	for _, spec := range contact.Fields() {
		value := new(string)
		inputs[spec.Name] = value
		cmd.Flags().StringVar(value, flagNames[spec.Name], "", "Value for "+string(spec.Name))
	}
	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the form before rendering")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Render only the form markup")
	cmd.Flags().StringVar(&action, "action", "", "Form action URL")
	return cmd
}
