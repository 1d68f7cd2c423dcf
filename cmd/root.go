package cmd

import (
	"os"

	"github.com/fbtool/launcher/internal/version"
	"github.com/fbtool/launcher/tui"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	dir        string
	logFile    string
	noUpdate   bool
	noPause    bool
	debug      bool
}

var opts rootOptions

// rootCmd runs the launcher when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fbtool",
	Short: "Facebook Tool launcher",
	Long: "fbtool prepares the working directory and starts the Facebook Tool.\n" +
		"It updates the checkout, checks the device, installs Python packages and loads the tool.",
	Version:       version.BuildVersion,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLauncher(cmd, opts)
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(err)
		os.Exit(1)
	}
}

func init() {
	tui.InitCommonStyles(os.Stdout)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		checkForLauncherUpdate(cmd)
		return nil
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is ./fbtool.yaml when present)")
	flags.StringVar(&opts.dir, "dir", ".", "working directory holding the tool files")
	flags.StringVar(&opts.logFile, "log-file", "", "write a JSON diagnostic log to this file")
	flags.BoolVar(&opts.noUpdate, "no-update", false, "skip the git update step and the release notice")
	flags.BoolVar(&opts.noPause, "no-pause", false, "never wait for Enter before exiting")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level (with --log-file)")
}
