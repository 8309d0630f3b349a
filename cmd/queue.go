package cmd

import (
	"fmt"

	"github.com/bnema/usergrid-go/internal/endpoint"
	"github.com/spf13/cobra"
)

func newQueueCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Publish to and read from queues",
	}

	cmd.AddCommand(
		newQueuePostCmd(app, flags),
		newQueueGetCmd(app, flags),
		newQueueSubscribeCmd(app, flags),
	)

	return cmd
}

func newQueuePostCmd(app *app, flags *globalFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "post <queue>",
		Short: "Publish a JSON message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := parseJSONObject(data, "--data")
			if err != nil {
				return err
			}
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "post message", s.client.PostMessage(args[0], message), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Message as a JSON object")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newQueueGetCmd(app *app, flags *globalFlags) *cobra.Command {
	var q endpoint.QueueQuery
	var position string

	cmd := &cobra.Command{
		Use:   "get <queue>",
		Short: "Read messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch endpoint.QueuePosition(position) {
			case "", endpoint.QueuePositionStart, endpoint.QueuePositionEnd, endpoint.QueuePositionCurrent:
				q.Position = endpoint.QueuePosition(position)
			default:
				return fmt.Errorf("unsupported --pos %q (start|end|current)", position)
			}

			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "get messages", s.client.GetMessages(args[0], q), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&q.Consumer, "consumer", "", "Consumer id")
	cmd.Flags().StringVar(&q.LastID, "last", "", "Read after this message uuid")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "Maximum number of messages")
	cmd.Flags().StringVar(&position, "pos", "", "Start position (start|end|current)")
	cmd.Flags().BoolVar(&q.Update, "update", false, "Advance the consumer position")
	cmd.Flags().BoolVar(&q.Synchronized, "synchronized", false, "Synchronize consumers")

	return cmd
}

func newQueueSubscribeCmd(app *app, flags *globalFlags) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "subscribe <queue> <subscriber-queue>",
		Short: "Subscribe a queue to another one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				if remove {
					_, err := app.execute(cmd, flags, "remove subscriber", s.client.RemoveSubscriber(args[0], args[1]), callOptions{})
					return err
				}
				_, err := app.execute(cmd, flags, "add subscriber", s.client.AddSubscriber(args[0], args[1]), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the subscription instead")

	return cmd
}
