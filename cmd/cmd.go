package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/webitel/wlog"
)

var (

	// version is the App's semantic version.
	version = "0.0.0"

	// commit is the git commit used to build the App.
	commit     = "hash"
	commitDate = "date"

	configPath = "config.yaml"
)

func Execute() {
	if err := command().Execute(); err != nil {
		os.Exit(-1)
	}
}

func command() *cobra.Command {
	log := wlog.NewLogger(&wlog.LoggerConfiguration{
		EnableConsole: true,
		ConsoleLevel:  "debug",
	})

	c := &cobra.Command{
		Use:          "triagebot",
		Short:        "Triagebot - ephemeral triage rooms out of application alerts",
		SilenceUsage: true,
		Version:      fmt.Sprintf("%s, commit %s, date %s", version, commit, commitDate),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flagSet(c.PersistentFlags())
	c.AddCommand(serveCommand(log))

	return c
}

func flagSet(fs *pflag.FlagSet) {
	fs.StringVarP(&configPath, "config", "c", configPath, "config file path")
}
