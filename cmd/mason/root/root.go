package root

import (
	"github.com/quarryhq/mason/cmd/mason/controller"
	"github.com/quarryhq/mason/cmd/mason/doctor"
	"github.com/quarryhq/mason/cmd/mason/initcmd"
	"github.com/quarryhq/mason/cmd/mason/shell"
	"github.com/quarryhq/mason/cmd/mason/version"
	"github.com/quarryhq/mason/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mason.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "mason",
		Short: "CLI: scaffolding and an interactive shell for mason web applications",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(controller.Cmd)
	cmd.AddCommand(shell.Cmd)
	cmd.AddCommand(initcmd.Cmd)
	cmd.AddCommand(doctor.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
