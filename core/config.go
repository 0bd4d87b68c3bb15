package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug            bool
		TestMode         bool
		Env              string
		Build            string
		AppName          string
		SecretKey        string
		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string
		UploadDir        string

		Server   serverConfig
		Database databaseConfig
	}

	serverConfig struct {
		Host               string
		Port               int
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	databaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          int
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (c serverConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c databaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewConfig loads the app configuration from the environment; sane defaults apply.
// A .env file matching the current ENV (DEV, TEST, QA, PROD) is loaded first if present.
func NewConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("secretKey", "w3g-k+u1$@o5barn%x#sd0(h7mz&!f)qc2(#ye4j^$pvi9tlay")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("uploadDir", filepath.Join(os.TempDir(), "darasa", "materials"))

	conf.SetDefault("serverHost", "0.0.0.0")
	conf.SetDefault("serverPort", 8000)
	conf.SetDefault("serverDebugHost", "0.0.0.0:9000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)

	conf.SetDefault("databaseEngine", "postgres")
	conf.SetDefault("databaseName", "darasa")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", 5432)
	conf.SetDefault("databaseUser", "")
	conf.SetDefault("databasePassword", "")
	conf.SetDefault("databaseAdminUser", "")
	conf.SetDefault("databaseAdminPassword", "")
	conf.SetDefault("databaseDisableTLS", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	testMode := false
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(".", "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	appName := conf.GetString("appName")
	return &Config{
		Debug:            conf.GetBool("debug"),
		TestMode:         testMode,
		Env:              env,
		Build:            conf.GetString("build"),
		AppName:          appName,
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: appName, Address: conf.GetString("defaultFromEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		UploadDir:        conf.GetString("uploadDir"),
		Server: serverConfig{
			Host:               conf.GetString("serverHost"),
			Port:               conf.GetInt("serverPort"),
			DebugHost:          conf.GetString("serverDebugHost"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Database: databaseConfig{
			Engine:        conf.GetString("databaseEngine"),
			Name:          conf.GetString("databaseName"),
			Host:          conf.GetString("databaseHost"),
			Port:          conf.GetInt("databasePort"),
			User:          conf.GetString("databaseUser"),
			Password:      conf.GetString("databasePassword"),
			AdminUser:     conf.GetString("databaseAdminUser"),
			AdminPassword: conf.GetString("databaseAdminPassword"),
			DisableTLS:    conf.GetBool("databaseDisableTLS"),
		},
	}
}
