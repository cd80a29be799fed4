package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret          string `yaml:"secret"`
	Issuer          string `yaml:"issuer"`
	IntermediateTTL string `yaml:"intermediate_ttl"`
	AccessTTL       string `yaml:"access_ttl"`
}

type CodeConfig struct {
	TTL    string `yaml:"ttl"`
	Length int    `yaml:"length"`
}

type NotifyConfig struct {
	Channel  string `yaml:"channel"` // "email" or "sms"
	Timeout  string `yaml:"timeout"`
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort int    `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`
	From     string `yaml:"from"`
	// Twilio settings, used when channel is "sms"
	TwilioSID   string `yaml:"twilio_sid"`
	TwilioToken string `yaml:"twilio_token"`
	TwilioFrom  string `yaml:"twilio_from"`
}

type LimitConfig struct {
	Window string `yaml:"window"`
	Max    int64  `yaml:"max"`
}

type RateLimitConfig struct {
	Login  LimitConfig `yaml:"login"`
	Verify LimitConfig `yaml:"verify"`
	Resend LimitConfig `yaml:"resend"`
	Reset  LimitConfig `yaml:"reset"`
}

type BootstrapConfig struct {
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
	AdminName     string `yaml:"admin_name"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	Code      CodeConfig      `yaml:"code"`
	Notify    NotifyConfig    `yaml:"notify"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

type Limit struct {
	Window time.Duration
	Max    int64
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret       string
	JWTIssuer       string
	IntermediateTTL time.Duration
	AccessTTL       time.Duration

	CodeTTL    time.Duration
	CodeLength int

	NotifyChannel string
	NotifyTimeout time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	NotifyFrom    string
	TwilioSID     string
	TwilioToken   string
	TwilioFrom    string

	LoginLimit  Limit
	VerifyLimit Limit
	ResendLimit Limit
	ResetLimit  Limit

	AdminEmail    string
	AdminPassword string
	AdminName     string

	MinSecretLength int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	intTTL, err := duration(configFile.JWT.IntermediateTTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid intermediate token TTL: %w", err)
	}

	accTTL, err := duration(configFile.JWT.AccessTTL, 7*24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid access token TTL: %w", err)
	}

	codeTTL, err := duration(configFile.Code.TTL, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid code TTL: %w", err)
	}

	notifyTimeout, err := duration(configFile.Notify.Timeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid notify timeout: %w", err)
	}

	loginLimit, err := limit(configFile.RateLimit.Login, 15*time.Minute, 100)
	if err != nil {
		return nil, fmt.Errorf("invalid login limit: %w", err)
	}
	verifyLimit, err := limit(configFile.RateLimit.Verify, 15*time.Minute, 100)
	if err != nil {
		return nil, fmt.Errorf("invalid verify limit: %w", err)
	}
	resendLimit, err := limit(configFile.RateLimit.Resend, 15*time.Minute, 50)
	if err != nil {
		return nil, fmt.Errorf("invalid resend limit: %w", err)
	}
	resetLimit, err := limit(configFile.RateLimit.Reset, time.Hour, 3)
	if err != nil {
		return nil, fmt.Errorf("invalid reset limit: %w", err)
	}

	codeLength := configFile.Code.Length
	if codeLength <= 0 {
		codeLength = 6
	}

	return &Config{
		Port:          fmt.Sprintf("%d", configFile.App.Port),
		GinMode:       configFile.App.GinMode,
		DSN:           env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		IntermediateTTL: intTTL,
		AccessTTL:       accTTL,

		CodeTTL:    codeTTL,
		CodeLength: codeLength,

		NotifyChannel: configFile.Notify.Channel,
		NotifyTimeout: notifyTimeout,
		SMTPHost:      env("SMTP_HOST", configFile.Notify.SMTPHost),
		SMTPPort:      configFile.Notify.SMTPPort,
		SMTPUser:      env("SMTP_USER", configFile.Notify.SMTPUser),
		SMTPPass:      env("SMTP_PASS", configFile.Notify.SMTPPass),
		NotifyFrom:    configFile.Notify.From,
		TwilioSID:     env("TWILIO_SID", configFile.Notify.TwilioSID),
		TwilioToken:   env("TWILIO_TOKEN", configFile.Notify.TwilioToken),
		TwilioFrom:    configFile.Notify.TwilioFrom,

		LoginLimit:  loginLimit,
		VerifyLimit: verifyLimit,
		ResendLimit: resendLimit,
		ResetLimit:  resetLimit,

		AdminEmail:    env("ADMIN_EMAIL", configFile.Bootstrap.AdminEmail),
		AdminPassword: env("ADMIN_PASSWORD", configFile.Bootstrap.AdminPassword),
		AdminName:     configFile.Bootstrap.AdminName,

		MinSecretLength: 6,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func limit(l LimitConfig, defWindow time.Duration, defMax int64) (Limit, error) {
	window, err := duration(l.Window, defWindow)
	if err != nil {
		return Limit{}, err
	}
	max := l.Max
	if max <= 0 {
		max = defMax
	}
	return Limit{Window: window, Max: max}, nil
}
