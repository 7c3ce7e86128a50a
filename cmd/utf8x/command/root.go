// Package command implements the utf8x subcommands.
package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment variables that override flags, e.g.
// UTF8X_COMPRESSION or UTF8X_CHUNK_SIZE.
const EnvPrefix = "UTF8X"

// cli carries the settings shared by all subcommands of one invocation.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

// NewRoot builds the utf8x command tree.
//
// Every flag can also be set by a UTF8X_ environment variable or a key in
// the file given with --config. Flags win over the environment, which wins
// over the config file.
func NewRoot() *cobra.Command {
	c := &cli{
		v:      viper.New(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "utf8x",
		Short:         "Encode and decode UTF-8 text.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.logger.Sync()
		},
	}

	root.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log progress at debug level")

	root.AddCommand(newEncodeCommand(c), newDecodeCommand(c))

	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.bindFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := c.v.GetString("config"); path != "" {
		c.v.SetConfigFile(path)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	logger, err := newLogger(c.v.GetBool("verbose"))
	if err != nil {
		return err
	}
	c.logger = logger

	return nil
}

// bindFlags binds every flag in fs to the viper key of the same name.
// Dashes in flag names map to underscores in environment variables.
func (c *cli) bindFlags(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		if bindErr := c.v.BindPFlag(f.Name, f); bindErr != nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, bindErr)
		}
	})

	return err
}

// newLogger returns a development logger when verbose, otherwise a
// production logger that only reports warnings and errors.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)

	return cfg.Build()
}
