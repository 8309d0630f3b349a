package cmd

import (
	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	ql     string
	limit  int
	cursor string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ql, "ql", "", "Query language clause")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Page size (default: server default of 10)")
	cmd.Flags().StringVar(&f.cursor, "cursor", "", "Cursor of the next page")
}

// query is nil when no flag was set, leaving the url without a query string.
func (f *queryFlags) query() *domain.Query {
	if f.ql == "" && f.limit <= 0 && f.cursor == "" {
		return nil
	}
	return &domain.Query{QL: f.ql, Limit: f.limit, Cursor: f.cursor}
}

func newEntitiesCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entities",
		Aliases: []string{"entity"},
		Short:   "Read and write entities of a collection",
	}

	cmd.AddCommand(
		newEntitiesGetCmd(app, flags),
		newEntitiesCreateCmd(app, flags),
		newEntitiesUpdateCmd(app, flags),
		newEntitiesDeleteCmd(app, flags),
	)

	return cmd
}

func newEntitiesGetCmd(app *app, flags *globalFlags) *cobra.Command {
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "get <collection>",
		Short: "List entities of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "get entities", s.client.GetEntities(args[0], query.query()), callOptions{})
				return err
			})
		},
	}
	query.register(cmd)

	return cmd
}

func newEntitiesCreateCmd(app *app, flags *globalFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create <collection>",
		Short: "Create an entity from a JSON object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := parseJSONObject(data, "--data")
			if err != nil {
				return err
			}
			entity := domain.Entity(properties)
			entity["type"] = args[0]

			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "create entity", s.client.CreateEntity(entity), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "{}", "Entity properties as a JSON object")

	return cmd
}

func newEntitiesUpdateCmd(app *app, flags *globalFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "update <collection> <uuid-or-name>",
		Short: "Update properties of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			properties, err := parseJSONObject(data, "--data")
			if err != nil {
				return err
			}
			entity := domain.Entity(properties)
			entity["type"] = args[0]
			if entity.UUID() == "" && entity.Name() == "" {
				if _, err := uuid.Parse(args[1]); err == nil {
					entity["uuid"] = args[1]
				} else {
					entity["name"] = args[1]
				}
			}

			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "update entity", s.client.UpdateEntity(entity), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Properties to set as a JSON object")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newEntitiesDeleteCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <uuid-or-name>",
		Short: "Delete an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "remove entity", s.client.RemoveEntity(args[0], args[1]), callOptions{})
				return err
			})
		},
	}
}

func newConnectCmd(app *app, flags *globalFlags) *cobra.Command {
	var connecteeType string
	var disconnect bool
	var list bool
	var query queryFlags

	cmd := &cobra.Command{
		Use:   "connect <connector-type> <connector-id> <relation> [connectee-id]",
		Short: "Connect two entities, or list and remove connections",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				c := s.client
				if list {
					_, err := app.execute(cmd, flags, "get entity connections", c.GetEntityConnections(args[0], args[1], args[2], query.query()), callOptions{})
					return err
				}

				connectee := ""
				if len(args) == 4 {
					connectee = args[3]
				}
				switch {
				case disconnect:
					_, err := app.execute(cmd, flags, "disconnect entities", c.DisconnectEntities(args[0], args[1], args[2], connectee), callOptions{})
					return err
				case connecteeType != "":
					_, err := app.execute(cmd, flags, "connect entities", c.ConnectEntitiesTyped(args[0], args[1], args[2], connecteeType, connectee), callOptions{})
					return err
				default:
					_, err := app.execute(cmd, flags, "connect entities", c.ConnectEntities(args[0], args[1], args[2], connectee), callOptions{})
					return err
				}
			})
		},
	}
	cmd.Flags().StringVar(&connecteeType, "type", "", "Collection of the connectee, when addressing it by name")
	cmd.Flags().BoolVar(&disconnect, "disconnect", false, "Remove the connection instead")
	cmd.Flags().BoolVar(&list, "list", false, "List the connections of the relation")
	query.register(cmd)

	return cmd
}
