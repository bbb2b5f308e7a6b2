package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = ".config.json"
	DefaultTokensFile = ".tokens"
	DefaultPeriod     = 1200
)

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrMissingCredentials = errors.New("missing credentials")
)

type Config struct {
	Catalog CatalogConfig
	Report  ReportConfig
	Tokens  Tokens
	Server  ServerConfig
}

// CatalogConfig comes from the JSON config file.
type CatalogConfig struct {
	ItemIDs     []string `mapstructure:"itemid" validate:"required,min=1,dive,required"`
	Keywords    string   `mapstructure:"keywords" validate:"required"`
	SearchIndex string   `mapstructure:"searchindex" validate:"required"`
	Marketplace string   `mapstructure:"marketplace" validate:"required"`
	Host        string   `mapstructure:"host" validate:"required,hostname"`
	Region      string   `mapstructure:"region" validate:"required"`
}

// ReportConfig combines the config file channel with the report flags.
type ReportConfig struct {
	Channel string `mapstructure:"channel" validate:"required"`
	Items   bool
	Search  bool
	Period  int `mapstructure:"period" validate:"gt=0"`
	Debug   bool
}

func (r ReportConfig) PeriodDuration() time.Duration {
	return time.Duration(r.Period) * time.Second
}

// Tokens are read from a dotenv style file, or from the environment when the
// file does not exist.
type Tokens struct {
	AWSAccessKeyID  string `env:"AWSAccessKeyId" validate:"required"`
	AWSSecretKey    string `env:"AWSSecretKey" validate:"required"`
	AWSAssociateTag string `env:"AWSAssociateTag" validate:"required"`
	SlackAPIToken   string `env:"SLACK_API_TOKEN" validate:"required"`
}

type ServerConfig struct {
	Addr string
}

type Options struct {
	ConfigFile string
	TokensFile string
}

// Load reads the JSON config file and the credentials. Values in the config
// file can be overridden by environment variables prefixed with AMZNBOT_.
func Load(opts Options) (*Config, error) {
	if opts.ConfigFile == "" {
		opts.ConfigFile = DefaultConfigFile
	}
	if opts.TokensFile == "" {
		opts.TokensFile = DefaultTokensFile
	}

	v := viper.New()
	v.SetConfigFile(opts.ConfigFile)
	v.SetConfigType("json")
	v.SetEnvPrefix("AMZNBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("marketplace", "www.amazon.com")
	v.SetDefault("host", "webservices.amazon.com")
	v.SetDefault("region", "us-east-1")
	v.SetDefault("period", DefaultPeriod)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, opts.ConfigFile, err)
	}

	cfg := &Config{}

	cfg.Catalog = CatalogConfig{
		ItemIDs:     v.GetStringSlice("itemid"),
		Keywords:    v.GetString("keywords"),
		SearchIndex: v.GetString("searchindex"),
		Marketplace: v.GetString("marketplace"),
		Host:        v.GetString("host"),
		Region:      v.GetString("region"),
	}

	cfg.Report = ReportConfig{
		Channel: v.GetString("channel"),
		Period:  v.GetInt("period"),
	}

	tokens, err := loadTokens(opts.TokensFile)
	if err != nil {
		return nil, err
	}
	cfg.Tokens = tokens

	return cfg, nil
}

func loadTokens(path string) (Tokens, error) {
	environ, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Tokens{}, fmt.Errorf("%w: read %s: %v", ErrMissingCredentials, path, err)
		}
		environ = env.ToMap(os.Environ())
	}

	var tokens Tokens
	if err := env.ParseWithOptions(&tokens, env.Options{Environment: environ}); err != nil {
		return Tokens{}, fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	return tokens, nil
}

// ValidateItems checks what the items lookup needs.
func (c *Config) ValidateItems() error {
	if err := c.validateCatalog("ItemIDs"); err != nil {
		return err
	}
	return c.validateAmazonTokens()
}

// ValidateSearch checks what the keyword search needs.
func (c *Config) ValidateSearch() error {
	if err := c.validateCatalog("Keywords", "SearchIndex"); err != nil {
		return err
	}
	return c.validateAmazonTokens()
}

// ValidateReport checks the polling loop setup: at least one source, a
// positive period, the keys of every selected source, and (unless running in
// debug mode, which never posts) the chat channel and token.
func (c *Config) ValidateReport() error {
	if !c.Report.Items && !c.Report.Search {
		return fmt.Errorf("%w: must provide at least one argument: items | search", ErrInvalidConfig)
	}
	if err := describe(newValidator().StructPartial(c.Report, "Period")); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Report.Items {
		if err := c.ValidateItems(); err != nil {
			return err
		}
	}
	if c.Report.Search {
		if err := c.ValidateSearch(); err != nil {
			return err
		}
	}
	if c.Report.Debug {
		return nil
	}
	if err := describe(newValidator().StructPartial(c.Report, "Channel")); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := describe(newValidator().StructPartial(c.Tokens, "SlackAPIToken")); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	return nil
}

func (c *Config) validateCatalog(fields ...string) error {
	fields = append(fields, "Marketplace", "Host", "Region")
	if err := describe(newValidator().StructPartial(c.Catalog, fields...)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) validateAmazonTokens() error {
	err := newValidator().StructPartial(c.Tokens, "AWSAccessKeyID", "AWSSecretKey", "AWSAssociateTag")
	if err := describe(err); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingCredentials, err)
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()

	commonTags := []string{
		"mapstructure",
		"env",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return validate
}

// describe turns validator errors into "'itemid' is required" style text
// using the key names a user writes in the config or tokens file.
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("'%s' is required", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("'%s' needs at least %s entries", fe.Field(), fe.Param()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("'%s' must be greater than %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
