package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwinkler/spesen/pkg/models"
)

// Config bundles everything the binary needs: the calculation settings used
// by the engine plus the path of the movement store.
type Config struct {
	Store            string `mapstructure:"store"`
	models.AppConfig `mapstructure:",squash"`
}

// Build loads config.yaml (or an explicit file), applies SPESEN_* env
// overrides and binds any provided command-line flags on top. A missing
// default config file is fine; an explicitly named one must exist.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("store", "movements.yaml")
	v.SetDefault("addStartMins", 0)
	v.SetDefault("subEndMins", 0)
	v.SetDefault("rules", []map[string]any{{"hoursThreshold": 8, "amount": 15}})
	layout := models.DefaultTimesheetLayout()
	v.SetDefault("timesheet.headerLabel", layout.HeaderLabel)
	v.SetDefault("timesheet.dateColumn", layout.DateColumn)
	v.SetDefault("timesheet.inColumn", layout.InColumn)
	v.SetDefault("timesheet.outColumn", layout.OutColumn)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SPESEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.AppConfig.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
