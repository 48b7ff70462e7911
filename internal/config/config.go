package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// CredentialState describes how usable the configured AWS credential pair is.
type CredentialState string

const (
	// CredentialsUnconfigured means at least one credential field is empty.
	CredentialsUnconfigured CredentialState = "unconfigured"
	// CredentialsPlaceholder means the credentials look like sample or dummy
	// values and must not be used to build a real client.
	CredentialsPlaceholder CredentialState = "invalid-placeholder"
	// CredentialsConfigured means the credential pair passed all checks.
	CredentialsConfigured CredentialState = "configured"
)

// placeholderPatterns are substrings that mark a credential value as a
// sample from documentation rather than a real key.
var placeholderPatterns = []string{
	"AKIADUMMYKEY", "dummysecretkey", "your-aws-", "your-secret-",
	"DUMMY", "PLACEHOLDER", "EXAMPLE", "TEST_KEY",
}

// Real AWS access key IDs are at least 16 characters, secrets at least 30.
const (
	minAccessKeyLen = 16
	minSecretKeyLen = 30
)

// Config holds the configuration settings for the location tracker API.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port the HTTP API listens on.
// - AWS: Connection settings for the DynamoDB table store.
type Config struct {
	Env  string    `yaml:"env"`  // Env is the current environment: local, dev, prod.
	Port int       `yaml:"port"` // Port is the HTTP API server port.
	AWS  AWSConfig `yaml:"aws"`  // AWS holds the DynamoDB store configuration.
}

// AWSConfig struct holds the credential pair and region used to reach the
// DynamoDB table store.
type AWSConfig struct {
	Region          string `yaml:"region"     env-default:"us-east-1"` // Region is the AWS region of the store.
	AccessKeyID     string `yaml:"access_key"`                         // AccessKeyID is the AWS access key ID.
	SecretAccessKey string `yaml:"secret_key"`                         // SecretAccessKey is the AWS secret access key.
	Endpoint        string `yaml:"endpoint"`                           // Endpoint overrides the store URL (local DynamoDB).
}

// MustLoad loads the configuration from environment variables and returns
// a Config struct. It panics when a value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("TRACKER_PORT", "8001"))
	if err != nil {
		panic("failed to parse port for the API server from configuration")
	}

	return &Config{
		Env:  setDefaultEnv("TRACKER_ENV", "production"),
		Port: port,
		AWS: AWSConfig{
			Region:          setDefaultEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        os.Getenv("AWS_ENDPOINT_URL"),
		},
	}
}

// CredentialState classifies the credential pair. Only CredentialsConfigured
// should lead to a real store client; the other two states keep the service
// on mock data.
func (a AWSConfig) CredentialState() CredentialState {
	if a.AccessKeyID == "" || a.SecretAccessKey == "" {
		return CredentialsUnconfigured
	}

	for _, pattern := range placeholderPatterns {
		lowered := strings.ToLower(pattern)
		if strings.Contains(strings.ToLower(a.AccessKeyID), lowered) ||
			strings.Contains(strings.ToLower(a.SecretAccessKey), lowered) {
			return CredentialsPlaceholder
		}
	}

	if len(a.AccessKeyID) < minAccessKeyLen || len(a.SecretAccessKey) < minSecretKeyLen {
		return CredentialsPlaceholder
	}

	return CredentialsConfigured
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
