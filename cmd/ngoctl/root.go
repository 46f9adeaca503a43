package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SaiNageswarS/uzhavar-connect/appconfig"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	env        string
	dataDir    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:          "ngoctl",
		Short:        "Query and import the NGO directory",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.ini", "Path to config.ini")
	root.PersistentFlags().StringVar(&opts.env, "env", os.Getenv("ENV"), "Config section to apply over DEFAULT")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the NGO flat files (overrides ngo_data_dir)")

	root.AddCommand(
		newStatesCmd(opts),
		newDistrictsCmd(opts),
		newSectorsCmd(opts),
		newSearchCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

func (o *globalOptions) loadConfig() (*appconfig.AppConfig, error) {
	if o.env != "" {
		if err := os.Setenv("ENV", o.env); err != nil {
			return nil, err
		}
	}
	cfg, err := appconfig.LoadAppConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.NGODataDir = o.dataDir
		cfg.NGOSource = appconfig.SourceFile
	}
	return cfg, nil
}

// withDirectory opens the configured source and hands fn a directory that
// reads it on every call.
func (o *globalOptions) withDirectory(fn func(*directory.Directory) error) error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	source, closeSource, err := cfg.BuildSource()
	if err != nil {
		return err
	}
	defer closeSource()

	dirOpts := cfg.DirectoryOptions()
	dirOpts.Mode = directory.ModePerRequest
	return fn(directory.New(source, dirOpts))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
