package pkgbasify

import (
	"os"

	"github.com/arthur-debert/pkgbasify/internal/version"
	"github.com/arthur-debert/pkgbasify/pkg/command"
	"github.com/arthur-debert/pkgbasify/pkg/config"
	"github.com/arthur-debert/pkgbasify/pkg/filesystem"
	"github.com/arthur-debert/pkgbasify/pkg/logging"
	"github.com/arthur-debert/pkgbasify/pkg/ui/confirm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Env is the host the commands act on
type Env struct {
	FS     afero.Fs
	Runner command.Runner
	In     *os.File
	Out    *os.File
	// Confirmer replaces the interactive confirmer when set
	Confirmer confirm.Confirmer
}

// DefaultEnv is the real host
func DefaultEnv() Env {
	return Env{
		FS:     filesystem.NewOS(),
		Runner: command.NewExecRunner(),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

type globalFlags struct {
	verbosity  int
	configPath string
	assumeYes  bool
	workDir    string
}

// NewRootCmd creates the root command acting on the real host
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnv(DefaultEnv())
}

// NewRootCmdWithEnv creates the root command acting on env
func NewRootCmdWithEnv(env Env) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "pkgbasify",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, env, flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().BoolVarP(&flags.assumeYes, "yes", "y", false, MsgFlagYes)
	rootCmd.PersistentFlags().StringVar(&flags.workDir, "workdir", "", MsgFlagWorkDir)

	rootCmd.AddCommand(newPlanCmd(env, flags))
	rootCmd.AddCommand(newInventoryCmd(env, flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the configuration with command line overrides applied
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("yes") {
		overrides["assume_yes"] = flags.assumeYes
	}
	if cmd.Flags().Changed("workdir") {
		overrides["paths.workdir_parent"] = flags.workDir
	}
	return config.Load(config.Options{Path: flags.configPath, Overrides: overrides})
}

func confirmerFor(env Env, cfg *config.Config) confirm.Confirmer {
	if env.Confirmer != nil {
		return env.Confirmer
	}
	return confirm.New(cfg.AssumeYes, env.In, env.Out)
}
