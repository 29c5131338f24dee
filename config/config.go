// Application configuration, loaded from config/config.yaml with
// environment-variable overrides.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Mail      MailConfig      `mapstructure:"mail"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Dedup     DedupConfig     `mapstructure:"dedup"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Notifier  NotifierConfig  `mapstructure:"notifier"`
	AI        AIConfig        `mapstructure:"ai"`
	Calendar  CalendarConfig  `mapstructure:"calendar"`
}

type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	Mode        string        `mapstructure:"mode"`
	Timeout     time.Duration `mapstructure:"timeout"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type SchedulerConfig struct {
	IntervalMinutes int  `mapstructure:"interval_minutes"`
	FetchLimit      int  `mapstructure:"fetch_limit"`
	Autostart       bool `mapstructure:"autostart"`
}

type MailConfig struct {
	Provider     string        `mapstructure:"provider"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	TLS          bool          `mapstructure:"tls"`
	Mailbox      string        `mapstructure:"mailbox"`
	SinceDays    int           `mapstructure:"since_days"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"` // memory | postgres
}

type DedupConfig struct {
	Driver string `mapstructure:"driver"` // memory | redis
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type NotifierConfig struct {
	Driver string       `mapstructure:"driver"` // log | rabbitmq | kafka
	Rabbit RabbitConfig `mapstructure:"rabbitmq"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
}

type RabbitConfig struct {
	URL       string `mapstructure:"url"`
	QueueName string `mapstructure:"queue_name"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type CalendarConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Provider     string        `mapstructure:"provider"` // ics
	ICSURL       string        `mapstructure:"ics_url"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// LoadConfig reads config/config.yaml and starts watching it so values such
// as the fetch limit can be picked up by the next scheduler cycle without a
// restart.
func LoadConfig() (*viper.Viper, error) {
	v := viper.New()

	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("MAILMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	} else {
		v.WatchConfig()
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("scheduler.interval_minutes", 15)
	v.SetDefault("scheduler.fetch_limit", 25)
	v.SetDefault("scheduler.autostart", true)

	v.SetDefault("mail.provider", "imap")
	v.SetDefault("mail.port", "993")
	v.SetDefault("mail.tls", true)
	v.SetDefault("mail.mailbox", "INBOX")
	v.SetDefault("mail.since_days", 7)
	v.SetDefault("mail.fetch_timeout", "30s")

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("dedup.driver", "memory")
	v.SetDefault("notifier.driver", "log")

	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", "1h")

	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")

	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")

	v.SetDefault("calendar.provider", "ics")
	v.SetDefault("calendar.fetch_timeout", "30s")

	v.SetDefault("notifier.rabbitmq.queue_name", "reminder_notifications")
	v.SetDefault("notifier.kafka.topic", "reminder-notifications")
}
