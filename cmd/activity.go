package cmd

import (
	"errors"

	"github.com/bnema/usergrid-go/internal/client"
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/spf13/cobra"
)

var errActivityTarget = errors.New("exactly one of --user or --group is required")

type activityTarget struct {
	user  string
	group string
}

func (t *activityTarget) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.user, "user", "", "User uuid or username")
	cmd.Flags().StringVar(&t.group, "group", "", "Group uuid or path")
}

func (t *activityTarget) validate() error {
	if (t.user == "") == (t.group == "") {
		return errActivityTarget
	}
	return nil
}

func newActivityCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Post activities and read feeds",
	}

	cmd.AddCommand(newActivityPostCmd(app, flags), newActivityFeedCmd(app, flags))

	return cmd
}

func newActivityPostCmd(app *app, flags *globalFlags) *cobra.Command {
	var target activityTarget
	var activity domain.Activity
	var actor domain.Actor
	var existing string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create an activity and post it to a user or group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := target.validate(); err != nil {
				return err
			}
			if actor.DisplayName != "" || actor.Username != "" {
				activity.Actor = &actor
			}

			return app.withSession(cmd, flags, func(s *session) error {
				c := s.client
				var call *client.Call
				switch {
				case existing != "" && target.user != "":
					call = c.PostUserActivityByUUID(target.user, existing)
				case existing != "":
					call = c.PostGroupActivityByUUID(target.group, existing)
				case target.user != "":
					call = c.PostUserActivity(target.user, activity)
				default:
					call = c.PostGroupActivity(target.group, activity)
				}
				_, err := app.execute(cmd, flags, "post activity", call, callOptions{})
				return err
			})
		},
	}
	target.register(cmd)
	cmd.Flags().StringVar(&activity.Verb, "verb", "post", "Activity verb")
	cmd.Flags().StringVar(&activity.Category, "category", "", "Activity category")
	cmd.Flags().StringVar(&activity.Content, "content", "", "Activity content")
	cmd.Flags().StringVar(&activity.Title, "title", "", "Activity title")
	cmd.Flags().StringVar(&actor.DisplayName, "actor-name", "", "Display name of the actor")
	cmd.Flags().StringVar(&actor.Username, "actor-username", "", "Username of the actor")
	cmd.Flags().StringVar(&actor.Email, "actor-email", "", "Email of the actor")
	cmd.Flags().StringVar(&existing, "uuid", "", "Post an activity created earlier instead of a new one")

	return cmd
}

func newActivityFeedCmd(app *app, flags *globalFlags) *cobra.Command {
	var target activityTarget
	var own bool
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Read the feed, or the own activities, of a user or group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := target.validate(); err != nil {
				return err
			}

			return app.withSession(cmd, flags, func(s *session) error {
				c := s.client
				q := query.query()
				var call *client.Call
				switch {
				case target.user != "" && own:
					call = c.GetActivitiesForUser(target.user, q)
				case target.user != "":
					call = c.GetActivityFeedForUser(target.user, q)
				case own:
					call = c.GetActivitiesForGroup(target.group, q)
				default:
					call = c.GetActivityFeedForGroup(target.group, q)
				}
				_, err := app.execute(cmd, flags, "get activity feed", call, callOptions{})
				return err
			})
		},
	}
	target.register(cmd)
	cmd.Flags().BoolVar(&own, "own", false, "List the activities posted by the target instead of its feed")
	query.register(cmd)

	return cmd
}
