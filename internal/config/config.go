// Package config loads the demo CLI's defaults via spf13/viper. The
// core engine stays config-library-free; only the demo entrypoint
// touches viper.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Demo holds every setting the CLI entrypoint needs to build a
// PathSearchRequest and pick an orchestration mode.
type Demo struct {
	SourceAsset      string
	TargetAsset      string
	SpendAmount      string
	SpendCurrency    string
	ToleranceMin     string
	ToleranceMax     string
	HopsMin          int
	HopsMax          int
	ResultLimit      int
	MaxExpansions    int
	MaxVisitedStates int
	TimeBudgetMs     int
	ThrowOnGuard     bool
	Mode             string // "path", "disjoint", "reusable"
	K                int
	OrdersPath       string
}

// Load reads configPath (if non-empty and present) over a set of
// defaults sized for a small illustrative order book.
func Load(configPath string) (Demo, error) {
	v := viper.New()
	v.SetDefault("sourceAsset", "USD")
	v.SetDefault("targetAsset", "BTC")
	v.SetDefault("spendAmount", "100")
	v.SetDefault("spendCurrency", "USD")
	v.SetDefault("toleranceMin", "0")
	v.SetDefault("toleranceMax", "0.05")
	v.SetDefault("hopsMin", 1)
	v.SetDefault("hopsMax", 4)
	v.SetDefault("resultLimit", 5)
	v.SetDefault("maxExpansions", 10000)
	v.SetDefault("maxVisitedStates", 10000)
	v.SetDefault("timeBudgetMs", 2000)
	v.SetDefault("throwOnGuard", false)
	v.SetDefault("mode", "path")
	v.SetDefault("k", 3)
	v.SetDefault("ordersPath", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Demo{}, err
			}
		}
	}

	return Demo{
		SourceAsset:      v.GetString("sourceAsset"),
		TargetAsset:      v.GetString("targetAsset"),
		SpendAmount:      v.GetString("spendAmount"),
		SpendCurrency:    v.GetString("spendCurrency"),
		ToleranceMin:     v.GetString("toleranceMin"),
		ToleranceMax:     v.GetString("toleranceMax"),
		HopsMin:          v.GetInt("hopsMin"),
		HopsMax:          v.GetInt("hopsMax"),
		ResultLimit:      v.GetInt("resultLimit"),
		MaxExpansions:    v.GetInt("maxExpansions"),
		MaxVisitedStates: v.GetInt("maxVisitedStates"),
		TimeBudgetMs:     v.GetInt("timeBudgetMs"),
		ThrowOnGuard:     v.GetBool("throwOnGuard"),
		Mode:             strings.ToLower(v.GetString("mode")),
		K:                v.GetInt("k"),
		OrdersPath:       v.GetString("ordersPath"),
	}, nil
}
