package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "ZEROPROOF_CONFIG_FILE"
	envPrefix         = "ZEROPROOF"
)

type topics struct {
	CartEvents string `mapstructure:"cart_events" validate:"required"`
}

type groups struct {
	CartAggregator string `mapstructure:"cart_aggregator" validate:"required"`
}

// brokerTLS holds the file paths of a mutual TLS setup.
type brokerTLS struct {
	Enabled  bool   `mapstructure:"enabled"`
	CAFile   string `mapstructure:"ca_file" validate:"required_if=Enabled true"`
	CertFile string `mapstructure:"cert_file" validate:"required_if=Enabled true"`
	KeyFile  string `mapstructure:"key_file" validate:"required_if=Enabled true"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers" validate:"required,min=1,dive,hostname_port"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls" validate:"required,min=1,dive,url"`
	TLS                brokerTLS `mapstructure:"tls"`
	Topics             topics    `mapstructure:"topics"`
	Groups             groups    `mapstructure:"groups"`
}

type httpServer struct {
	Addr           string        `mapstructure:"addr" validate:"required"`
	HandlerTimeout time.Duration `mapstructure:"handler_timeout" validate:"gt=0"`
	CloseTimeout   time.Duration `mapstructure:"close_timeout" validate:"gt=0"`
}

type catalog struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gt=0"`
}

type currency struct {
	Locale string `mapstructure:"locale" validate:"required,bcp47_language_tag"`
	Code   string `mapstructure:"code" validate:"required,iso4217"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServer     httpServer `mapstructure:"http_server"`
	SQLDB          string     `mapstructure:"sql_db" validate:"required"`
	DBPingAttempts int        `mapstructure:"db_ping_attempts" validate:"gte=1"`
	Catalog        catalog    `mapstructure:"catalog"`
	Currency       currency   `mapstructure:"currency"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	cfg, err := load(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

func load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, validationErr(err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server.addr", ":8080")
	v.SetDefault("http_server.handler_timeout", "5s")
	v.SetDefault("http_server.close_timeout", "10s")
	v.SetDefault("db_ping_attempts", 5)
	v.SetDefault("catalog.refresh_interval", "30s")
	v.SetDefault("currency.locale", "en-US")
	v.SetDefault("currency.code", "USD")
	v.SetDefault("broker.tls.enabled", false)
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
	v.SetDefault("broker.topics.cart_events", "cart_events")
	v.SetDefault("broker.groups.cart_aggregator", "cart_aggregator")
}

func validationErr(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, len(verrs))
	for i, fe := range verrs {
		errs[i] = fmt.Errorf(
			"%s: failed on %q rule", fe.Namespace(), fe.Tag(),
		)
	}
	return errors.Join(errs...)
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	SQLDB=%q
	DBPingAttempts=%d
	CatalogRefreshInterval=%s
	Currency=%s/%s

	HTTPServer:
	Addr=%q
	HandlerTimeout=%s
	CloseTimeout=%s

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		CartEvents=%q
	Groups:
		CartAggregator=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.SQLDB,
		c.DBPingAttempts,
		c.Catalog.RefreshInterval,
		c.Currency.Locale, c.Currency.Code,
		c.HTTPServer.Addr,
		c.HTTPServer.HandlerTimeout,
		c.HTTPServer.CloseTimeout,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLS.Enabled,
		c.Broker.Topics.CartEvents,
		c.Broker.Groups.CartAggregator,
	)
}
