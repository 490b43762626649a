package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Agent    AgentConfig
	Wallet   WalletConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL string
}

// AuthConfig holds identity verification configuration. IdentityVerificationKey
// is the auth provider's ES256 public key (PEM) for identity tokens; Secret
// signs the service's own HS256 session tokens.
type AuthConfig struct {
	Secret                  string
	AccessExpiry            time.Duration
	IdentityVerificationKey string
	IdentityIssuer          string
}

// AgentConfig holds the language-model side of the agent
type AgentConfig struct {
	LLMAPIKey     string
	Model         string
	MemoryWindow  int
	MemoryTTL     time.Duration
	StreamTimeout time.Duration
}

// WalletConfig holds wallet provisioning and chain access configuration
type WalletConfig struct {
	APIKeyName   string
	APIKeySecret string
	NetworkID    string
	RPCURL       string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "synx"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Auth: AuthConfig{
			Secret:       getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
			IdentityVerificationKey: getEnv("IDENTITY_VERIFICATION_KEY", ""),
			IdentityIssuer:          getEnv("IDENTITY_ISSUER", ""),
		},
		Agent: AgentConfig{
			LLMAPIKey:     getEnv("LLM_API_KEY", ""),
			Model:         getEnv("LLM_MODEL", "gemini-2.0-flash"),
			MemoryWindow:  getEnvAsInt("AGENT_MEMORY_WINDOW", 20),
			MemoryTTL:     getEnvAsDuration("AGENT_MEMORY_TTL", 24*time.Hour),
			StreamTimeout: getEnvAsDuration("AGENT_STREAM_TIMEOUT", 2*time.Minute),
		},
		Wallet: WalletConfig{
			APIKeyName:   getEnv("WALLET_API_KEY_NAME", ""),
			APIKeySecret: getEnv("WALLET_API_KEY_SECRET", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			NetworkID:    getEnv("NETWORK_ID", "base-sepolia"),
			RPCURL:       getEnv("RPC_URL", "https://sepolia.base.org"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
