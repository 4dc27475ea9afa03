package config

import (
	"log"

	"github.com/spf13/viper"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

type Config struct {
	Server   ServerConfig
	Defaults DefaultsConfig
	Site     models.SiteInfo
}

type ServerConfig struct {
	Port               string
	Env                string
	JWTSecret          string `mapstructure:"jwt_secret"`
	JWTExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

type DefaultsConfig struct {
	AdminUsername     string `mapstructure:"admin_username"`
	AdminPassword     string `mapstructure:"admin_password"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	SeedDemoData      bool   `mapstructure:"seed_demo_data"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, checking environment variables: %v", err)
	}

	// Environment variables override or replace the .env file.
	viper.AutomaticEnv()
	viper.BindEnv("SERVER_PORT", "PORT")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 24)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)

	AppConfig = &Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			Env:                viper.GetString("SERVER_ENV"),
			JWTSecret:          viper.GetString("JWT_SECRET"),
			JWTExpirationHours: viper.GetInt("JWT_EXPIRATION_HOURS"),
		},
		Defaults: DefaultsConfig{
			AdminUsername:     viper.GetString("ADMIN_USERNAME"),
			AdminPassword:     viper.GetString("ADMIN_PASSWORD"),
			LowStockThreshold: viper.GetInt("LOW_STOCK_THRESHOLD"),
			SeedDemoData:      viper.GetBool("SEED_DEMO_DATA"),
		},
	}

	// Site info ships in a TOML file so it can be edited without
	// touching the environment.
	siteViper := viper.New()
	siteViper.SetConfigFile("config/config.toml")
	siteViper.SetConfigType("toml")
	if err := siteViper.ReadInConfig(); err != nil {
		log.Printf("Warning: config/config.toml not found, using empty site info: %v", err)
	} else {
		if err := siteViper.UnmarshalKey("site", &AppConfig.Site); err != nil {
			log.Printf("Error: Failed to unmarshal site info from TOML: %v", err)
		}
	}
}
