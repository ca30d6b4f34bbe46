package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string `mapstructure:"PORT"`
	DatabaseURL          string `mapstructure:"DATABASE_URL"`
	AdminToken           string `mapstructure:"ADMIN_TOKEN"`
	SessionSecret        string `mapstructure:"SESSION_SECRET"`
	SupabaseURL          string `mapstructure:"SUPABASE_URL"`
	SupabaseKey          string `mapstructure:"SUPABASE_KEY"`
	SupabaseBucket       string `mapstructure:"SUPABASE_BUCKET"`
	PhotoFolder          string `mapstructure:"PHOTO_FOLDER"`
	DiscordBotToken      string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordRSVPChannelID string `mapstructure:"DISCORD_RSVP_CHANNEL_ID"`
	FrontendURL          string `mapstructure:"FRONTEND_URL"`
	EnableCORS           bool   `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "rsvp.db")
	viper.SetDefault("SUPABASE_BUCKET", "photos")
	viper.SetDefault("PHOTO_FOLDER", "formatura")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:4000")
	viper.SetDefault("ENABLE_CORS", true)

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("ADMIN_TOKEN")
	viper.BindEnv("SESSION_SECRET")
	viper.BindEnv("SUPABASE_URL")
	viper.BindEnv("SUPABASE_KEY")
	viper.BindEnv("SUPABASE_BUCKET")
	viper.BindEnv("PHOTO_FOLDER")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_RSVP_CHANNEL_ID")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
