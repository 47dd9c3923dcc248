package settings

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "CHILLIBOWL"

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the YAML file at path, applies CHILLIBOWL_* environment
// overrides (CHILLIBOWL_KITCHEN_COOKS for kitchen.cooks) and validates the
// result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// Validate checks the kitchen constraints alone.
func (k Kitchen) Validate() error {
	if err := validate.Struct(k); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// Every key needs a default so AutomaticEnv can override it through Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", "info")
	v.SetDefault("logger.file_log_name", "")
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.compress", false)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.key_prefix", "chillibowl")
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.pool_timeout", 0)
	v.SetDefault("redis.dial_timeout", 0)
	v.SetDefault("redis.read_timeout", 0)
	v.SetDefault("redis.write_timeout", 0)
	v.SetDefault("redis.max_retries", 0)
	v.SetDefault("redis.max_retry_backoff", 0)
	v.SetDefault("redis.min_retry_backoff", 0)

	v.SetDefault("kitchen.max_size", 100)
	v.SetDefault("kitchen.customers", 90)
	v.SetDefault("kitchen.cooks", 10)
	v.SetDefault("kitchen.orders_per_customer", 3)
	v.SetDefault("kitchen.cook_time", 0)
	v.SetDefault("kitchen.linked_storage", false)

	v.SetDefault("snowflake.epoch", 0)
	v.SetDefault("snowflake.node", 0)
	v.SetDefault("snowflake.step", 0)
	v.SetDefault("snowflake.total_bits", 0)
	v.SetDefault("snowflake.worker_id", 0)
}
