package repositories

import (
	"github.com/bankist-labs/bankist-api/internal/models"
	"github.com/bankist-labs/bankist-api/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// DefaultSeed returns the built-in demo accounts. Usernames are derived
// from the owner names at construction and never recomputed.
func DefaultSeed() []models.Account {
	seed := []models.Account{
		{
			Owner:        "Jonas Schmedtmann",
			Movements:    []float64{200, 450, -400, 3000, -650, -130, 70, 1300},
			InterestRate: 1.2,
			PIN:          1111,
		},
		{
			Owner:        "Jessica Davis",
			Movements:    []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30},
			InterestRate: 1.5,
			PIN:          2222,
		},
		{
			Owner:        "Steven Thomas Williams",
			Movements:    []float64{200, -200, 340, -300, -20, 50, 400, -460},
			InterestRate: 0.7,
			PIN:          3333,
		},
		{
			Owner:        "Sarah Smith",
			Movements:    []float64{430, 1000, 700, 50, 90},
			InterestRate: 1,
			PIN:          4444,
		},
	}
	for i := range seed {
		seed[i].Username = models.UsernameFor(seed[i].Owner)
	}
	return seed
}

// LoadSeed reads accounts from a YAML seed file; an empty path falls back
// to the built-in defaults.
func LoadSeed(logger *zap.Logger, path string) ([]models.Account, error) {
	if utils.IsEmpty(path) {
		return DefaultSeed(), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var out struct {
		Accounts []models.Account `mapstructure:"accounts"`
	}
	if err := v.Unmarshal(&out); err != nil {
		return nil, err
	}
	for i := range out.Accounts {
		out.Accounts[i].Username = models.UsernameFor(out.Accounts[i].Owner)
	}
	logger.Info("seed_file_loaded", zap.String("path", path), zap.Int("accounts", len(out.Accounts)))
	return out.Accounts, nil
}
