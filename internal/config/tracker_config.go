package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type TrackerConfig struct {
	DatasetPath string `mapstructure:"dataset_path"`
	DigestSize  int    `mapstructure:"digest_size"`
	DigestCron  string `mapstructure:"digest_cron"`
	OutboxDir   string `mapstructure:"outbox_dir"`
}

func (config TrackerConfig) validate() error {

	var missingFields []string

	if config.DatasetPath == "" {
		missingFields = append(missingFields, "dataset_path")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.DigestSize <= 0 {
		return fmt.Errorf("digest_size must be greater than zero")
	}

	return nil
}

func (config TrackerConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("tracker.dataset_path", "DATASET_PATH"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("tracker.digest_size", "DIGEST_SIZE"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("tracker.digest_cron", "DIGEST_CRON"); err != nil {
		errs = append(errs, err)
	}

	if err := viper.BindEnv("tracker.outbox_dir", "OUTBOX_DIR"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}
