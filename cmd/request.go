package cmd

import (
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/spf13/cobra"
)

func newRequestCmd(app *app, flags *globalFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "request <method> <url>",
		Short: "Send a raw request; a relative url is resolved below the application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			if data != "" {
				body = []byte(data)
			}
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "api request", s.client.APIRequest(args[1], domain.Method(args[0]), body), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Request body")

	return cmd
}
