package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/pipeline"
)

// configCommand prints the effective configuration as TOML.
func (c *CLI) configCommand() *cobra.Command {
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

Defaults are merged with the config file and any flags given, exactly as
generate would see them. The output is a valid config file:

  starfield config --stars 500 > night.toml
  starfield generate --config night.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				c.Logger.Warn("configuration is not valid", "err", err)
			}
			return pipeline.WriteOptions(cmd.OutOrStdout(), opts)
		},
	}

	flags.registerConfig(cmd.Flags())
	flags.registerField(cmd.Flags())
	flags.registerOutput(cmd.Flags())

	return cmd
}
