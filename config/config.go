package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file
type Config struct {
	Version    string   `mapstructure:"version"`
	NotesDir   string   `mapstructure:"notes_dir"`
	Extensions []string `mapstructure:"extensions"`
	IgnoreFile string   `mapstructure:"ignore_file"`
	CacheDir   string   `mapstructure:"cache_dir"`
	UseGit     bool     `mapstructure:"use_git"`
	Theme      string   `mapstructure:"theme"`
	DryRun     bool     `mapstructure:"dry_run"`
	LogLevel   string   `mapstructure:"log_level"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:    "0.3.0",
	NotesDir:   ".",
	Extensions: []string{".md"},
	IgnoreFile: ".zettel-ignore",
	CacheDir:   "",
	UseGit:     false,
	Theme:      "dracula",
	DryRun:     false,
	LogLevel:   "info",
}

// configName is the config file name without extension
const configName = "zettel-config"

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs resolves the configuration from defaults, the config file,
// environment variables and CLI flags, in increasing precedence.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("ZETTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if cfgFile != "" {
		configType := GetConfigFileType(cfgFile)
		if configType == "" {
			return nil, fmt.Errorf("unsupported config file %s: use .json, .yml or .yaml", cfgFile)
		}
		v.SetConfigFile(cfgFile)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(v, rootCmd)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if !filepath.IsAbs(config.NotesDir) {
		config.NotesDir = filepath.Join(cwd, config.NotesDir)
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(config.NotesDir, ".zettel", "cache")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings the scanner cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.NotesDir) == "" {
		return errors.New("notes_dir must not be empty")
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must list at least one file extension")
	}
	info, err := os.Stat(c.NotesDir)
	if err != nil {
		return fmt.Errorf("notes_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("notes_dir %s is not a directory", c.NotesDir)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q", c.LogLevel)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("notes_dir", DefaultConfig.NotesDir)
	v.SetDefault("extensions", DefaultConfig.Extensions)
	v.SetDefault("ignore_file", DefaultConfig.IgnoreFile)
	v.SetDefault("cache_dir", DefaultConfig.CacheDir)
	v.SetDefault("use_git", DefaultConfig.UseGit)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("dry_run", DefaultConfig.DryRun)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("notes_dir", "ZETTEL_DIR")
	_ = v.BindEnv("extensions", "ZETTEL_EXTENSIONS")
	_ = v.BindEnv("ignore_file", "ZETTEL_IGNORE_FILE")
	_ = v.BindEnv("cache_dir", "ZETTEL_CACHE_DIR")
	_ = v.BindEnv("use_git", "ZETTEL_USE_GIT")
	_ = v.BindEnv("theme", "ZETTEL_THEME")
	_ = v.BindEnv("dry_run", "ZETTEL_DRY_RUN")
	_ = v.BindEnv("log_level", "ZETTEL_LOG_LEVEL")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("notes_dir", flags.Lookup("dir"))
	_ = v.BindPFlag("extensions", flags.Lookup("extensions"))
	_ = v.BindPFlag("ignore_file", flags.Lookup("ignore_file"))
	_ = v.BindPFlag("cache_dir", flags.Lookup("cache_dir"))
	_ = v.BindPFlag("use_git", flags.Lookup("use_git"))
	_ = v.BindPFlag("theme", flags.Lookup("theme"))
	_ = v.BindPFlag("dry_run", flags.Lookup("dry_run"))
	_ = v.BindPFlag("log_level", flags.Lookup("log_level"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML).")

	rootCmd.PersistentFlags().StringP("dir", "d", DefaultConfig.NotesDir, "Folder that holds the notes.")
	rootCmd.PersistentFlags().StringSlice("extensions", DefaultConfig.Extensions, "File extensions treated as notes (e.g., '.md,.txt').")
	rootCmd.PersistentFlags().String("ignore_file", DefaultConfig.IgnoreFile, "Ignore file looked up in the notes folder.")
	rootCmd.PersistentFlags().String("cache_dir", DefaultConfig.CacheDir, "Where compaction plans are stored (default '<dir>/.zettel/cache').")
	rootCmd.PersistentFlags().Bool("use_git", DefaultConfig.UseGit, "Rename tracked notes with 'git mv'.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Chroma theme for rename listings (e.g., 'dracula', 'monokai'). Empty for plain text.")
	rootCmd.PersistentFlags().Bool("dry_run", DefaultConfig.DryRun, "Show what would be renamed without touching files.")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level: debug, info, warn or error.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
