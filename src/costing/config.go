package costing

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// DefaultContractMultiplier is the standard US equity option contract
// size of 100 shares.
const DefaultContractMultiplier = 100

type Config struct {
	ContractMultiplier int    `envconfig:"CONTRACT_MULTIPLIER" default:"100"`
	Currency           string `envconfig:"JOURNAL_CURRENCY" default:"USD"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// DefaultConfig standard US equity options setup, amounts in USD.
func DefaultConfig() Config {
	return Config{ContractMultiplier: DefaultContractMultiplier, Currency: "USD"}
}
