package pkgbasify

import (
	"fmt"

	"github.com/arthur-debert/pkgbasify/internal/version"
	"github.com/arthur-debert/pkgbasify/pkg/convert"
	"github.com/arthur-debert/pkgbasify/pkg/errors"
	"github.com/arthur-debert/pkgbasify/pkg/inventory"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func runConvert(cmd *cobra.Command, env Env, flags *globalFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	converter := convert.New(cfg, env.FS, env.Runner, confirmerFor(env, cfg))
	result, err := converter.Run(cmd.Context())
	if err != nil {
		return err
	}

	renderResult(cmd.OutOrStdout(), result)
	if !result.Succeeded() {
		return errors.Newf(errors.ErrCommit, MsgErrConversionIncomplete, len(result.Errors))
	}
	return nil
}

func newPlanCmd(env Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Long:  MsgPlanLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			plan, err := convert.New(cfg, env.FS, env.Runner, confirmerFor(env, cfg)).Plan(cmd.Context())
			if err != nil {
				return err
			}

			renderPlan(cmd.OutOrStdout(), plan)
			return nil
		},
	}
}

func newInventoryCmd(env Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: MsgInventoryShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			scanner := inventory.NewScanner(env.FS, cfg.Probes.Markers())
			inv := scanner.Scan()
			log.Debug().Interface("inventory", inv).Msg("Scanned")

			renderInventory(cmd.OutOrStdout(), scanner, inv)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}
