package cmd

import (
	"fmt"
	"os"

	"bertlv/ber"
	"bertlv/cli"
	"bertlv/config"
	"bertlv/log"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var activeConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "bertlv",
	Short: "Stream decoder for BER/DER encoded objects.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.CalledAs() == "init" {
			return nil
		}
		homeDir := cli.GetHomeDir(cmd)
		exists, err := config.HomeDirExists(homeDir)
		if err != nil {
			return errors.Wrap(err, "error checking home directory")
		}
		if exists {
			cfg, err := config.ReadConfigFile(homeDir)
			if err != nil {
				return err
			}
			activeConfig = cfg
		} else {
			cfg := config.DefaultConfig
			activeConfig = &cfg
		}
		if activeConfig.LogLevel != "" {
			level, err := log.NewLevel(activeConfig.LogLevel)
			if err != nil {
				return errors.Wrap(err, "invalid log level")
			}
			log.SetLevel(level)
		}
		return nil
	},
}

// readerOpts merges the active config with any command-line overrides.
func readerOpts(cmd *cobra.Command) *ber.ReaderOpts {
	opts := &ber.ReaderOpts{}
	if activeConfig != nil {
		opts.MaxObjectSize = activeConfig.Reader.MaxObjectSize
		opts.InitialChunkSize = activeConfig.Reader.InitialChunkSize
		opts.MaxZeroReads = activeConfig.Reader.MaxZeroReads
		opts.Strict = activeConfig.Reader.Strict
	}
	if cmd.Flags().Changed(cli.FlagStrict) {
		strict, _ := cmd.Flags().GetBool(cli.FlagStrict)
		opts.Strict = strict
	}
	if cmd.Flags().Changed(cli.FlagMaxObjectSize) {
		size, _ := cmd.Flags().GetInt(cli.FlagMaxObjectSize)
		opts.MaxObjectSize = size
	}
	return opts
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.bertlv", "Home directory for the tool's configuration.")
	rootCmd.PersistentFlags().Bool(cli.FlagStrict, false, "Reject indefinite-length (non-DER) framing.")
	rootCmd.PersistentFlags().Int(cli.FlagMaxObjectSize, 0, "Maximum size in bytes of one encoded object.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
