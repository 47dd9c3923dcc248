package settings

type Config struct {
	Logger    Logger    `mapstructure:"logger"`
	Redis     Redis     `mapstructure:"redis"`
	Kitchen   Kitchen   `mapstructure:"kitchen"`
	Snowflake Snowflake `mapstructure:"snowflake"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress"`
}

// Redis is the configuration for the receipt store. An empty Host disables it.
type Redis struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Password        string `mapstructure:"password"`
	Database        int    `mapstructure:"database" validate:"gte=0"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	PoolSize        int    `mapstructure:"pool_size"`
	MinIdleConns    int    `mapstructure:"min_idle_conns"`
	PoolTimeout     int    `mapstructure:"pool_timeout"`  // Seconds
	DialTimeout     int    `mapstructure:"dial_timeout"`  // Seconds
	ReadTimeout     int    `mapstructure:"read_timeout"`  // Seconds
	WriteTimeout    int    `mapstructure:"write_timeout"` // Seconds
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff"` // Milliseconds
	MinRetryBackoff int    `mapstructure:"min_retry_backoff"` // Milliseconds
}

// Kitchen sizes the restaurant simulation.
type Kitchen struct {
	MaxSize           int  `mapstructure:"max_size" validate:"gte=1"`
	Customers         int  `mapstructure:"customers" validate:"gte=1"`
	Cooks             int  `mapstructure:"cooks" validate:"gte=1"`
	OrdersPerCustomer int  `mapstructure:"orders_per_customer" validate:"gte=1"`
	CookTime          int  `mapstructure:"cook_time" validate:"gte=0"` // Milliseconds per order
	LinkedStorage     bool `mapstructure:"linked_storage"`
}

type Snowflake struct {
	Epoch     int64 `mapstructure:"epoch" validate:"gte=0"` // Unix milliseconds
	Node      uint8 `mapstructure:"node"`
	Step      uint8 `mapstructure:"step"`
	TotalBits uint8 `mapstructure:"total_bits" validate:"lte=64"`
	WorkerID  int64 `mapstructure:"worker_id" validate:"gte=0"`
}
