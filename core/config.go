package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application settings. Use NewConfig to load it.
type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (local; default), TEST, QA, PROD
	AppName  string
	Build    string
	Hostname string
	WorkDir  string

	DefaultFromEmail mail.Address
	SendgridAPIKey   string
	RollbarToken     string

	// storage substrate; DatabaseURL takes precedence over DataDir when set
	DataDir     string
	DatabaseURL string

	// per-school settings defaults
	DefaultInstallments     int
	TuitionFeeCategory      string
	TransportationFeeOneWay float64
	TransportationFeeTwoWay float64
}

// NewConfig loads the configuration from defaults, an optional
// config/.env.<env> file and environment variables (in increasing
// order of precedence).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Madaris")
	conf.SetDefault("build", "dev")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("dataDir", "data")
	conf.SetDefault("databaseUrl", "")
	conf.SetDefault("defaultInstallments", 4)
	conf.SetDefault("tuitionFeeCategory", "رسوم دراسية")
	conf.SetDefault("transportationFeeOneWay", 150)
	conf.SetDefault("transportationFeeTwoWay", 300)

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	hostname, _ := os.Hostname()

	return &Config{
		Debug:    conf.GetBool("debug"),
		TestMode: conf.GetBool("testMode"),
		Env:      env,
		AppName:  conf.GetString("appName"),
		Build:    conf.GetString("build"),
		Hostname: hostname,
		WorkDir:  wd,
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridAPIKey:          conf.GetString("sendgridApiKey"),
		RollbarToken:            conf.GetString("rollbarToken"),
		DataDir:                 conf.GetString("dataDir"),
		DatabaseURL:             conf.GetString("databaseUrl"),
		DefaultInstallments:     conf.GetInt("defaultInstallments"),
		TuitionFeeCategory:      conf.GetString("tuitionFeeCategory"),
		TransportationFeeOneWay: conf.GetFloat64("transportationFeeOneWay"),
		TransportationFeeTwoWay: conf.GetFloat64("transportationFeeTwoWay"),
	}
}
