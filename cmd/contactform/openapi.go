package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/apidoc"
)

func newOpenAPICmd(_ *app) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := apidoc.JSON(contextOrBackground(cmd), apidoc.WithServerURL(server))
			if err != nil {
				return err
			}
			payload = append(payload, '\n')
			_, err = cmd.OutOrStdout().Write(payload)
			return err
		},
	}

	cmd.Flags().StringVar(&server, "server", "/contact", "Server URL published in the document")
	return cmd
}
