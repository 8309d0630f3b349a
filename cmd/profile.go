package cmd

import (
	"fmt"

	"github.com/bnema/usergrid-go/internal/application"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved organization and application targets",
	}

	cmd.AddCommand(newProfileSetCmd(app), newProfileListCmd(app))

	return cmd
}

func newProfileSetCmd(app *app) *cobra.Command {
	var command application.ConfigureProfileCommand

	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command.Name = domain.ProfileName(args[0])
			profile, err := app.service.Configure(cmd.Context(), command)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "profile %s -> %s/%s/%s\n",
				profile.Name, profile.ResolvedBaseURL(), profile.OrganizationID, profile.ApplicationID)
			return err
		},
	}

	cmd.Flags().StringVar(&command.OrganizationID, "org", "", "Organization id")
	cmd.Flags().StringVar(&command.ApplicationID, "app", "", "Application id")
	cmd.Flags().StringVar(&command.BaseURL, "base-url", "", "Server url (default: "+domain.DefaultBaseURL+")")
	cmd.Flags().BoolVar(&command.MakeDefault, "default", false, "Make this the default profile")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("app")

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := app.service.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, summary := range summaries {
				marker := " "
				if summary.Default {
					marker = "*"
				}
				login := "-"
				if summary.LoggedIn {
					login = firstNonEmpty(summary.Profile.Username, "application")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s/%s\t%s\t%s\n",
					marker,
					summary.Profile.Name,
					summary.Profile.OrganizationID,
					summary.Profile.ApplicationID,
					summary.Profile.ResolvedBaseURL(),
					login,
				)
			}

			return nil
		},
	}
}
