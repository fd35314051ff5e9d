package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// DefaultContractAddress is the first contract address a fresh Hardhat node
// assigns, where the ATM contract is deployed by the local deploy script.
const DefaultContractAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Session SessionConfig `mapstructure:"session"`
	Chain   ChainConfig   `mapstructure:"chain"`
	Owner   OwnerConfig   `mapstructure:"owner"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"` // false = rate limiting disabled
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig controls the browser session cookie and idle eviction.
type SessionConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiry     time.Duration `mapstructure:"expiry"`
	Issuer     string        `mapstructure:"issuer"`
	CookieName string        `mapstructure:"cookie_name"`
	SecureOnly bool          `mapstructure:"secure_only"` // Secure flag on the cookie
	IdleTTL    time.Duration `mapstructure:"idle_ttl"`
	SweepSpec  string        `mapstructure:"sweep_spec"` // cron spec for the idle sweep
}

// ChainConfig points at the wallet provider and the deployed ATM contract.
type ChainConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"` // empty = no wallet provider
	ContractAddress string        `mapstructure:"contract_address"`
	ArtifactPath    string        `mapstructure:"artifact_path"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout"`
}

// OwnerConfig holds the account owner details shown next to the balance.
type OwnerConfig struct {
	Name    string `mapstructure:"name"`
	Country string `mapstructure:"country"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ATM_.
// Nested keys use underscore: ATM_CHAIN_RPC_URL, ATM_SESSION_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.expiry", "24h")
	v.SetDefault("session.issuer", "wallet-atm")
	v.SetDefault("session.cookie_name", "atm_session")
	v.SetDefault("session.secure_only", false)
	v.SetDefault("session.idle_ttl", "2h")
	v.SetDefault("session.sweep_spec", "@every 5m")
	v.SetDefault("chain.rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("chain.contract_address", DefaultContractAddress)
	v.SetDefault("chain.artifact_path", "artifacts/contracts/Assessment.sol/Assessment.json")
	v.SetDefault("chain.poll_interval", "1s")
	v.SetDefault("chain.dial_timeout", "5s")
	v.SetDefault("owner.name", "Praveen")
	v.SetDefault("owner.country", "India")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// ATM_CHAIN_RPC_URL -> chain.rpc_url
	v.SetEnvPrefix("ATM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The file is optional, env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the values the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("session.secret must be at least 16 characters"))
	}
	if c.Session.IdleTTL <= 0 {
		errs = append(errs, errors.New("session.idle_ttl must be positive"))
	}
	if !common.IsHexAddress(c.Chain.ContractAddress) {
		errs = append(errs, fmt.Errorf("chain.contract_address %q is not a hex address", c.Chain.ContractAddress))
	}
	if c.Chain.PollInterval <= 0 {
		errs = append(errs, errors.New("chain.poll_interval must be positive"))
	}
	return errors.Join(errs...)
}
