package main

import (
	"fmt"
	"os"

	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/spf13/cobra"
)

func newStatesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDirectory(func(dir *directory.Directory) error {
				states, err := dir.States(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, states)
			})
		},
	}
}

func newDistrictsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "districts [state]",
		Short: "List the districts of a state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDirectory(func(dir *directory.Directory) error {
				districts, err := dir.Districts(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, districts)
			})
		},
	}
}

func newSectorsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "List sectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDirectory(func(dir *directory.Directory) error {
				sectors, err := dir.Sectors(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, sectors)
			})
		},
	}
}

func newSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		state    string
		district string
		sectors  []string
		match    string
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find NGOs in a district by sector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := directory.ParseSectorMatch(match)
			if err != nil {
				return err
			}
			return opts.withDirectory(func(dir *directory.Directory) error {
				records, err := dir.Search(cmd.Context(), directory.SearchQuery{
					StateID:    state,
					DistrictID: district,
					Sectors:    directory.SplitSectors(sectors...),
					Match:      m,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, records)
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "State id")
	cmd.Flags().StringVar(&district, "district", "", "District id")
	cmd.Flags().StringSliceVar(&sectors, "sectors", nil, "Sectors every result must mention")
	cmd.Flags().StringVar(&match, "match", "", "Sector match mode: substring or tag")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("district")
	return cmd
}

func newSeedCmd(opts *globalOptions) *cobra.Command {
	var (
		mongoURI string
		database string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the flat files into MongoDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if mongoURI != "" {
				if err := os.Setenv("MONGO_URI", mongoURI); err != nil {
					return err
				}
			}
			if os.Getenv("MONGO_URI") == "" {
				return fmt.Errorf("--mongo-uri or MONGO_URI is required")
			}
			if database == "" {
				database = cfg.NGOMongoDatabase
			}

			ctx := cmd.Context()
			client := odm.ProvideMongoClient()
			defer func() { _ = client.Disconnect(ctx) }()

			version, err := directory.Seed(ctx, client, database, directory.NewFileSource(cfg.DataPaths()))
			if err != nil {
				return err
			}
			return printJSON(cmd, version)
		},
	}
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (default $MONGO_URI)")
	cmd.Flags().StringVar(&database, "database", "", "Target database (default ngo_mongo_database)")
	return cmd
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Load the directory and print its counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDirectory(func(dir *directory.Directory) error {
				version, err := dir.Reload(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, version)
			})
		},
	}
}
