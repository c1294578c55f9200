package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB

	Prod_env bool

	ProxyPath string   `toml:"proxy_path"` // optional egress proxies for webhook delivery
	ProxyList []string `toml:"-"`

	IndexerSecret string `toml:"-"` // shared secret the indexing service sends on ingress
	SecretKey     []byte `toml:"-"` // aes key for stored endpoint secrets

	PrivateKey string `toml:"private_key"` // admin access header

	Testing struct {
		Enabled       bool
		DeliveryDelay time.Duration `toml:"delivery_delay"`
	} `toml:"testing"`

	Webhook struct {
		UserAgent      string `toml:"user_agent"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		MaxRetries     int    `toml:"max_retries"`
		BaseDelayMs    int    `toml:"base_delay_ms"`
		JitterMs       int    `toml:"jitter_ms"`
		MaxDelayMs     int    `toml:"max_delay_ms"`
	} `toml:"webhook"`

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}
	Nats struct {
		Servers     string
		TomlServers []string `toml:"servers"`
	}
	Api struct {
		Ipv4  string
		Proto string
	} `toml:"paygate_web"`
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	user, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-user.txt")
	if err != nil {
		panic(err)
	}

	pass, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-password.txt")
	if err != nil {
		panic(err)
	}

	var formatedServers string
	for _, x := range config.Nats.TomlServers {
		connectUrl := fmt.Sprintf("nats://%s:%s@%s,", user, pass, string(x))
		formatedServers += connectUrl
	}

	config.Nats.Servers = formatedServers

	indexerSecret, err := os.ReadFile(os.Getenv("SECRETS") + "/indexer-auth.txt")
	if err != nil {
		panic(err)
	}
	config.IndexerSecret = strings.TrimSpace(string(indexerSecret))

	keyB64, err := os.ReadFile(os.Getenv("SECRETS") + "/endpoint-secret-key.txt")
	if err != nil {
		panic(err)
	}
	config.SecretKey, err = base64.StdEncoding.DecodeString(strings.TrimSpace(string(keyB64)))
	if err != nil {
		panic("endpoint secret key is not valid base64: " + err.Error())
	}

	// webhook proxies are optional
	if config.ProxyPath != "" {
		config.ProxyList = GetProxyList(config.ProxyPath)
	}

	if config.Prod_env && config.Testing.Enabled {
		panic("cannot use testing in prod")
	}

	return &config
}

func GetProxyList(path string) []string {
	proxyList, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var proxies []string
	for _, line := range strings.Split(string(proxyList), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies
}
