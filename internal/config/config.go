package config

import (
	"flag"
	"os"

	"go.uber.org/zap"
)

type Config struct {
	RunAddress        string
	DatabaseURI       string
	RedisAddr         string
	GatewayProcessURL string
	Passphrase        string
	MerchantID        string
	MerchantKey       string
	AdminLogin        string
	AdminPasswordHash string
	Key               string
	BuyerNotifyURL    string
	SellerNotifyURL   string
	Logger            *zap.SugaredLogger
}

func NewConfig() *Config {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "server.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "DB connection string")
	flag.StringVar(&cfg.RedisAddr, "r", "", "redis address for settings cache (optional)")
	flag.StringVar(&cfg.GatewayProcessURL, "g", "", "payment gateway process URL")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}

	if processURL := os.Getenv("GATEWAY_PROCESS_URL"); processURL != "" {
		cfg.GatewayProcessURL = processURL
	}

	if passphrase := os.Getenv("GATEWAY_PASSPHRASE"); passphrase != "" {
		cfg.Passphrase = passphrase
	}

	if merchantID := os.Getenv("MERCHANT_ID"); merchantID != "" {
		cfg.MerchantID = merchantID
	}

	if merchantKey := os.Getenv("MERCHANT_KEY"); merchantKey != "" {
		cfg.MerchantKey = merchantKey
	}

	if adminLogin := os.Getenv("ADMIN_LOGIN"); adminLogin != "" {
		cfg.AdminLogin = adminLogin
	}

	if adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH"); adminPasswordHash != "" {
		cfg.AdminPasswordHash = adminPasswordHash
	}

	if key := os.Getenv("PAYGATE_KEY"); key != "" {
		cfg.Key = key
	}

	if buyerNotifyURL := os.Getenv("BUYER_NOTIFY_URL"); buyerNotifyURL != "" {
		cfg.BuyerNotifyURL = buyerNotifyURL
	}

	if sellerNotifyURL := os.Getenv("SELLER_NOTIFY_URL"); sellerNotifyURL != "" {
		cfg.SellerNotifyURL = sellerNotifyURL
	}
}
