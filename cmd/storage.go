package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

func newStorageCmd(app *app, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Read and write the data kept for this device",
	}

	cmd.AddCommand(
		newStorageGetCmd(app, flags),
		newStorageSetCmd(app, flags),
		newStoragePushTokenCmd(app, flags),
		newStoragePushAlertCmd(app, flags),
	)

	return cmd
}

func newStorageGetCmd(app *app, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Read the device entity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "get remote storage", s.client.GetRemoteStorage(), callOptions{})
				return err
			})
		},
	}
}

func newStorageSetCmd(app *app, flags *globalFlags) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the data kept for this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			properties, err := parseJSONObject(data, "--data")
			if err != nil {
				return err
			}
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "set remote storage", s.client.SetRemoteStorage(properties), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Data as a JSON object")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newStoragePushTokenCmd(app *app, flags *globalFlags) *cobra.Command {
	var notifier string

	cmd := &cobra.Command{
		Use:   "push-token <hex-token>",
		Short: "Register the push token of this device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := hex.DecodeString(args[0])
			if err != nil {
				return fmt.Errorf("decode push token: %w", err)
			}
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "set device push token", s.client.SetDevicePushToken(token, notifier), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&notifier, "notifier", "", "Notifier name")
	_ = cmd.MarkFlagRequired("notifier")

	return cmd
}

func newStoragePushAlertCmd(app *app, flags *globalFlags) *cobra.Command {
	var notifier, sound string

	cmd := &cobra.Command{
		Use:   "push-alert <path> <message>",
		Short: "Send an alert to the users, groups or devices under path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withSession(cmd, flags, func(s *session) error {
				_, err := app.execute(cmd, flags, "push alert", s.client.PushAlert(args[1], sound, args[0], notifier), callOptions{})
				return err
			})
		},
	}
	cmd.Flags().StringVar(&notifier, "notifier", "", "Notifier name")
	cmd.Flags().StringVar(&sound, "sound", "", "Sound to play")
	_ = cmd.MarkFlagRequired("notifier")

	return cmd
}
