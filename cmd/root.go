package cmd

import "github.com/spf13/cobra"

// globalFlags are shared by every command talking to the server.
type globalFlags struct {
	profile string
	asJSON  bool
	async   bool
	logging bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "ug",
		Short:         "Usergrid CLI (ug): call a Usergrid application from the terminal",
		Long:          "ug talks to one application of a Usergrid organization: log in, read and write entities, post activities, use queues and device storage.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&flags.profile, "profile", "", "Profile name (default: the default profile)")
	rootCmd.PersistentFlags().BoolVar(&flags.asJSON, "json", false, "Render the envelope as JSON")
	rootCmd.PersistentFlags().BoolVar(&flags.async, "async", false, "Run the call asynchronously and wait for its handler")
	rootCmd.PersistentFlags().BoolVar(&flags.logging, "log", false, "Trace requests and responses on stderr")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newLoginCmd(app, flags),
		newLogoutCmd(app, flags),
		newEntitiesCmd(app, flags),
		newConnectCmd(app, flags),
		newActivityCmd(app, flags),
		newQueueCmd(app, flags),
		newStorageCmd(app, flags),
		newRequestCmd(app, flags),
	)

	return rootCmd
}
