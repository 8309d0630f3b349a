package cmd

import (
	"fmt"

	"github.com/bnema/usergrid-go/internal/application"
	"github.com/bnema/usergrid-go/internal/client"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Obtain an access token and save it on the profile",
	}

	cmd.AddCommand(
		newLoginPasswordCmd(app, flags),
		newLoginPinCmd(app, flags),
		newLoginFacebookCmd(app, flags),
		newLoginAdminCmd(app, flags),
	)

	return cmd
}

func newLoginPasswordCmd(app *app, flags *globalFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Log a user in with username and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.login(cmd, flags, "log in user", func(c *client.Client) *client.Call {
				return c.LogInUser(username, password)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginPinCmd(app *app, flags *globalFlags) *cobra.Command {
	var username, pin string

	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Log a user in with username and pin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.login(cmd, flags, "log in user with pin", func(c *client.Client) *client.Call {
				return c.LogInUserWithPin(username, pin)
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&pin, "pin", "", "Pin")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("pin")

	return cmd
}

func newLoginFacebookCmd(app *app, flags *globalFlags) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "facebook",
		Short: "Log a user in with a Facebook access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.login(cmd, flags, "log in with facebook", func(c *client.Client) *client.Call {
				return c.LogInUserWithFacebook(token)
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Facebook access token")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newLoginAdminCmd(app *app, flags *globalFlags) *cobra.Command {
	var clientID, clientSecret string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Log the application in with its client credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.login(cmd, flags, "log in admin", func(c *client.Client) *client.Call {
				return c.LogInAdmin(clientID, clientSecret)
			})
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Application client id")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Application client secret")
	_ = cmd.MarkFlagRequired("client-id")
	_ = cmd.MarkFlagRequired("client-secret")

	return cmd
}

func (a *app) login(cmd *cobra.Command, flags *globalFlags, name string, build func(*client.Client) *client.Call) error {
	return a.withSession(cmd, flags, func(s *session) error {
		if _, err := a.execute(cmd, flags, name, build(s.client), callOptions{secret: true}); err != nil {
			return err
		}
		if s.profile.Name == "" {
			_, err := fmt.Fprintln(cmd.ErrOrStderr(), "no profile selected, token not saved")
			return err
		}

		username := ""
		if user := s.client.LoggedInUser(); user != nil {
			username = user.Username
		}
		return a.service.RememberLogin(cmd.Context(), application.RememberLoginCommand{
			Name:      s.profile.Name,
			Username:  username,
			Token:     s.client.AccessToken(),
			ExpiresAt: s.client.Session().TokenExpiresAt(),
		})
	})
}

func newLogoutCmd(app *app, flags *globalFlags) *cobra.Command {
	var revoke, revokeAll bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved token, optionally revoking it on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				if revoke || revokeAll {
					if s.profile.Username == "" {
						return fmt.Errorf("profile %s has no logged in user to revoke", s.profile.Name)
					}
					call := s.client.RevokeToken(s.profile.Username)
					name := "revoke token"
					if revokeAll {
						call = s.client.RevokeAllTokens(s.profile.Username)
						name = "revoke all tokens"
					}
					if _, err := app.execute(cmd, flags, name, call, callOptions{}); err != nil {
						return err
					}
				}

				s.client.LogOut()
				if s.profile.Name == "" {
					return nil
				}
				return app.service.Forget(cmd.Context(), s.profile.Name)
			})
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke the token on the server first")
	cmd.Flags().BoolVar(&revokeAll, "revoke-all", false, "Revoke every token of the user on the server first")

	return cmd
}
