package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/c2fo/azfs"
	"github.com/c2fo/azfs/azfile"
	"github.com/c2fo/azfs/options"
)

// defaultConfigPath is expanded with go-homedir.
const defaultConfigPath = "~/.azfs.yaml"

// Config is the CLI configuration.  Sources, highest priority first: flags, AZFS_* environment variables,
// the config file, defaults.
type Config struct {
	StorageAccount   string `mapstructure:"storage_account" validate:"omitempty,alphanum,lowercase,min=3,max=24"`
	StorageAccessKey string `mapstructure:"storage_access_key" validate:"omitempty,base64"`
	ConnectionString string `mapstructure:"connection_string"`
	TenantID         string `mapstructure:"tenant_id" validate:"required_with=ClientID ClientSecret"`
	ClientID         string `mapstructure:"client_id" validate:"required_with=TenantID ClientSecret"`
	ClientSecret     string `mapstructure:"client_secret" validate:"required_with=TenantID ClientID"`

	BatchConcurrency int    `mapstructure:"batch_concurrency" validate:"gte=1,lte=64"`
	LogLevel         string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Progress         bool   `mapstructure:"progress"`
	NoColor          bool   `mapstructure:"no_color"`

	// ServiceURLs maps a storage kind label (blob, dfs, queue) to an endpoint override, ie: Azurite.
	ServiceURLs map[string]string `mapstructure:"service_urls" validate:"dive,keys,oneof=blob dfs queue,endkeys,url"`
}

var validate = validator.New()

func defaults(v *viper.Viper) {
	v.SetDefault("storage_account", "")
	v.SetDefault("storage_access_key", "")
	v.SetDefault("connection_string", "")
	v.SetDefault("tenant_id", "")
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("batch_concurrency", 1)
	v.SetDefault("log_level", "warn")
	v.SetDefault("progress", false)
	v.SetDefault("no_color", false)
	v.SetDefault("service_urls", map[string]string{})
}

// LoadConfig reads the config file at path (the default location when empty), the environment and the flags.
// A missing file at the default location is not an error.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("AZFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config path %q: %w", path, err)
	}
	v.SetConfigFile(expanded)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"log_level":         "log-level",
			"no_color":          "no-color",
			"progress":          "progress",
			"batch_concurrency": "concurrency",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	settings := map[string]any{}
	for _, key := range v.AllKeys() {
		if !strings.Contains(key, ".") {
			settings[key] = v.Get(key)
		}
	}
	settings["service_urls"] = v.GetStringMapString("service_urls")
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the struct tags and the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
		}
		return err
	}
	if c.StorageAccessKey != "" && c.ConnectionString != "" {
		return fmt.Errorf("storage_access_key and connection_string are mutually exclusive")
	}
	return nil
}

// Options converts the credential settings to azfile.Options.
func (c *Config) Options() azfile.Options {
	return azfile.Options{
		AccountName:      c.StorageAccount,
		AccountKey:       c.StorageAccessKey,
		ConnectionString: c.ConnectionString,
		TenantID:         c.TenantID,
		ClientID:         c.ClientID,
		ClientSecret:     c.ClientSecret,
		BatchConcurrency: c.BatchConcurrency,
	}
}

// ClientOptions returns the azfile options the config describes.
func (c *Config) ClientOptions(logger *slog.Logger) ([]options.NewClientOption[azfile.Client], error) {
	opts := []options.NewClientOption[azfile.Client]{
		azfile.WithOptions(c.Options()),
		azfile.WithLogger(logger),
	}
	for label, u := range c.ServiceURLs {
		kind, err := azfs.ParseKind(label)
		if err != nil {
			return nil, err
		}
		opts = append(opts, azfile.WithServiceURL(kind, u))
	}
	return opts, nil
}

// Level returns the slog level of LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
