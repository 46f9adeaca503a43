package appconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/SaiNageswarS/uzhavar-connect/directory"
	"github.com/go-ini/ini"
)

const (
	SourceFile  = "file"
	SourceMongo = "mongo"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	HTTPPort string `ini:"http_port"`
	GRPCPort string `ini:"grpc_port"`

	NGODataDir       string `ini:"ngo_data_dir"`
	NGOStatesFile    string `ini:"ngo_states_file"`
	NGODistrictsFile string `ini:"ngo_districts_file"`
	NGOSectorsFile   string `ini:"ngo_sectors_file"`
	NGONGOsFile      string `ini:"ngo_ngos_file"`

	NGOSource        string        `ini:"ngo_source"`
	NGOMongoDatabase string        `ini:"ngo_mongo_database"`
	NGOLoadMode      string        `ini:"ngo_load_mode"`
	NGOSectorMatch   string        `ini:"ngo_sector_match"`
	NGOWatchFiles    bool          `ini:"ngo_watch_files"`
	NGOWatchDebounce time.Duration `ini:"ngo_watch_debounce"`

	RoverIDs []string `ini:"rover_ids" delim:","`
}

// Default is the configuration used when config.ini sets nothing.
func Default() *AppConfig {
	return &AppConfig{
		HTTPPort:         ":8081",
		GRPCPort:         ":50051",
		NGODataDir:       "ngo_data",
		NGOSource:        SourceFile,
		NGOMongoDatabase: "ngo_directory",
		NGOLoadMode:      string(directory.ModeCached),
		NGOSectorMatch:   string(directory.MatchSubstring),
		NGOWatchDebounce: 500 * time.Millisecond,
	}
}

// LoadAppConfig maps the DEFAULT section of path over Default, then lets
// config.LoadConfig apply the section named by ENV. A missing file yields the
// defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	// config.LoadConfig reads only the ENV section, so keys shared by every
	// environment are mapped from DEFAULT first.
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := file.Section(ini.DefaultSection).MapTo(cfg); err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	if err := config.LoadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("map %s [%s]: %w", path, os.Getenv("ENV"), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if _, err := directory.ParseLoadMode(c.NGOLoadMode); err != nil {
		return fmt.Errorf("ngo_load_mode: %w", err)
	}
	if _, err := directory.ParseSectorMatch(c.NGOSectorMatch); err != nil {
		return fmt.Errorf("ngo_sector_match: %w", err)
	}
	switch c.NGOSource {
	case SourceFile, SourceMongo:
	default:
		return fmt.Errorf("ngo_source must be %q or %q, got %q", SourceFile, SourceMongo, c.NGOSource)
	}
	return nil
}

// DataPaths resolves the flat file locations. Explicit file settings win;
// relative ones are taken from the data dir.
func (c *AppConfig) DataPaths() directory.Paths {
	paths := directory.DefaultPaths(c.NGODataDir)
	override := func(dst *string, file string) {
		if file == "" {
			return
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(c.NGODataDir, file)
		}
		*dst = file
	}
	override(&paths.States, c.NGOStatesFile)
	override(&paths.Districts, c.NGODistrictsFile)
	override(&paths.Sectors, c.NGOSectorsFile)
	override(&paths.NGOs, c.NGONGOsFile)
	return paths
}

// DirectoryOptions converts the load mode and match settings. Call Validate first.
func (c *AppConfig) DirectoryOptions() directory.Options {
	mode, _ := directory.ParseLoadMode(c.NGOLoadMode)
	match, _ := directory.ParseSectorMatch(c.NGOSectorMatch)
	return directory.Options{Mode: mode, Match: match}
}

// BuildSource opens the configured source. The returned close func is never
// nil, even when err is set.
func (c *AppConfig) BuildSource() (directory.Source, func(), error) {
	if c.NGOSource != SourceMongo {
		return directory.NewFileSource(c.DataPaths()), func() {}, nil
	}

	if os.Getenv("MONGO_URI") == "" {
		return nil, func() {}, fmt.Errorf("ngo_source is mongo but MONGO_URI is not set")
	}
	client := odm.ProvideMongoClient()
	closeFn := func() { _ = client.Disconnect(context.Background()) }
	return directory.NewMongoSource(client, c.NGOMongoDatabase), closeFn, nil
}
