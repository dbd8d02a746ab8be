package config

import (
	"strings"

	"github.com/ZilDuck/nft-marketplace/internal/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Env     string
	Network string
	Index   string
	Debug   bool

	ApiPort    string
	HealthPort string

	MetadataRetries int
	IpfsHosts       []string
	IpfsTimeout     int

	Market        MarketConfig
	ElasticSearch ElasticSearchConfig
	Aws           AwsConfig
}

// MarketConfig is fixed at startup; the fee configuration never changes for
// the lifetime of a marketplace instance.
type MarketConfig struct {
	Address    string
	Contract   string
	FeeAccount string
	FeePercent uint
}

type ElasticSearchConfig struct {
	Hosts            []string
	Sniff            bool
	HealthCheck      bool
	Debug            bool
	Username         string
	Password         string
	MappingDir       string
	BulkPersistCount int
	Refresh          string
}

type AwsConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

var ipfsHosts = []string{
	"https://gateway.pinata.cloud",
	"https://cloudflare-ipfs.com",
	"https://gateway.ipfs.io",
}

func Init(app string) {
	if err := godotenv.Load(".env"); err != nil {
		zap.L().With(zap.Error(err), zap.String("app", app)).Warn("Config: No .env file found")
	}

	initLogger()
}

func initLogger() {
	log.NewLogger(Get().Debug)
}

func Get() *Config {
	viper.AutomaticEnv()
	setDefaults()

	return &Config{
		Env:             viper.GetString("ENV"),
		Network:         viper.GetString("NETWORK"),
		Index:           viper.GetString("INDEX_NAME"),
		Debug:           viper.GetBool("DEBUG"),
		ApiPort:         viper.GetString("API_PORT"),
		HealthPort:      viper.GetString("HEALTH_PORT"),
		MetadataRetries: viper.GetInt("METADATA_RETRIES"),
		IpfsHosts:       getSlice("IPFS_HOSTS", ipfsHosts),
		IpfsTimeout:     viper.GetInt("IPFS_TIMEOUT"),
		Market: MarketConfig{
			Address:    viper.GetString("MARKET_ADDRESS"),
			Contract:   viper.GetString("MARKET_CONTRACT"),
			FeeAccount: viper.GetString("MARKET_FEE_ACCOUNT"),
			FeePercent: viper.GetUint("MARKET_FEE_PERCENT"),
		},
		ElasticSearch: ElasticSearchConfig{
			Hosts:            getSlice("ELASTIC_SEARCH_HOSTS", make([]string, 0)),
			Sniff:            viper.GetBool("ELASTIC_SEARCH_SNIFF"),
			HealthCheck:      viper.GetBool("ELASTIC_SEARCH_HEALTH_CHECK"),
			Debug:            viper.GetBool("ELASTIC_SEARCH_DEBUG"),
			Username:         viper.GetString("ELASTIC_SEARCH_USERNAME"),
			Password:         viper.GetString("ELASTIC_SEARCH_PASSWORD"),
			MappingDir:       viper.GetString("ELASTIC_SEARCH_MAPPING_DIR"),
			BulkPersistCount: viper.GetInt("ELASTIC_SEARCH_BULK_PERSIST_COUNT"),
			Refresh:          viper.GetString("ELASTIC_SEARCH_REFRESH"),
		},
		Aws: AwsConfig{
			AccessKey: viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey: viper.GetString("AWS_SECRET_KEY_ID"),
			Region:    viper.GetString("AWS_REGION"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("ENV", "")
	viper.SetDefault("NETWORK", "zilliqa")
	viper.SetDefault("INDEX_NAME", "marketplace")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("API_PORT", "8080")
	viper.SetDefault("HEALTH_PORT", "8090")
	viper.SetDefault("METADATA_RETRIES", 3)
	viper.SetDefault("IPFS_TIMEOUT", 10)
	viper.SetDefault("MARKET_ADDRESS", "0x3b3b03c1f4e1b4e40d4dbefa54a4b0f46c4a6a5e")
	viper.SetDefault("MARKET_CONTRACT", "0x7d3f4c6e9a2b44c98d1f5a3b0e2d4f6a8c1b3e5d")
	viper.SetDefault("MARKET_FEE_ACCOUNT", "0x1c9a5e3f7b2d48a6c0e4f8b2a6d0c4e8f2a6b0d4")
	viper.SetDefault("MARKET_FEE_PERCENT", 1)
	viper.SetDefault("ELASTIC_SEARCH_SNIFF", true)
	viper.SetDefault("ELASTIC_SEARCH_HEALTH_CHECK", true)
	viper.SetDefault("ELASTIC_SEARCH_DEBUG", false)
	viper.SetDefault("ELASTIC_SEARCH_MAPPING_DIR", "/data/mappings")
	viper.SetDefault("ELASTIC_SEARCH_BULK_PERSIST_COUNT", 300)
	viper.SetDefault("ELASTIC_SEARCH_REFRESH", "wait_for")
}

func getSlice(key string, defaultVal []string) []string {
	valStr := viper.GetString(key)
	if valStr == "" {
		return defaultVal
	}

	return strings.Split(valStr, ",")
}
