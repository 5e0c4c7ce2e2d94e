package configs

import (
	"github.com/bankist-labs/bankist-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port              string `mapstructure:"PORT" validate:"required"`
	SeedFile          string `mapstructure:"SEED_FILE"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisTLS          bool   `mapstructure:"REDIS_TLS"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES" validate:"min=1"`
	LoanRate          int    `mapstructure:"LOAN_RATE" validate:"min=0"` // requests per second, 0 = unlimited
	LoanBurst         int    `mapstructure:"LOAN_BURST" validate:"min=1"`
}

func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("app") // Prefix for env vars
	viper.AutomaticEnv()

	// Default values
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SESSION_TTL_MINUTES", "5")
	viper.SetDefault("LOAN_RATE", "5")
	viper.SetDefault("LOAN_BURST", "10")

	// Optional: Read from config.yaml if exists
	if gin.ReleaseMode == gin.Mode() {
		viper.SetConfigName("config.prod")
	} else if gin.TestMode == gin.Mode() {
		logger.Warn("running in test mode")
		viper.SetConfigName("config.test")
	} else {
		logger.Warn("running in development mode")
		viper.SetConfigName("config.dev")
	}
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	_ = viper.ReadInConfig() // Ignore if no file

	var cfg Config
	if err := utils.ParseStructEnv(&cfg); err != nil {
		return nil, err
	}
	// Validate after unmarshal
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, utils.FormatConfigErrors(logger, err, cfg)
	}
	return &cfg, nil
}
