package r2sync

import (
	"fmt"
	"os"

	"github.com/jinzhu/configor"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	AccountID       string `env:"R2_ACCOUNT_ID" required:"true"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID" required:"true"`
	SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY" required:"true"`
	Bucket          string `env:"R2_BUCKET_NAME" required:"true"`
	Prefix          string `env:"R2_PREFIX"`
	SourceFolder    string `env:"R2_SOURCE_FOLDER"`
	Concurrency     int    `env:"R2_CONCURRENCY" default:"4"`
	Notify          NotifyConfig
}

type NotifyConfig struct {
	Profile string
	Region  string
	Topic   string
}

// LoadConfig reads a .env file when one exists, then an optional config file,
// then the R2_* environment variables. Credentials are validated here so a
// bad run dies before it touches the network.
func LoadConfig(configFilePath string) (AppConfig, error) {
	var appConfig AppConfig

	if _, statErr := os.Stat(".env"); statErr == nil {
		if dotenvErr := godotenv.Load(); dotenvErr != nil {
			return appConfig, fmt.Errorf("%w: loading .env: %v", ErrConfig, dotenvErr)
		}
	}

	var configErr error
	if configFilePath != "" {
		configErr = configor.Load(&appConfig, configFilePath)
	} else {
		configErr = configor.Load(&appConfig)
	}
	if configErr != nil {
		return appConfig, fmt.Errorf("%w: %v", ErrConfig, configErr)
	}

	return appConfig, nil
}

// Endpoint returns the account-scoped R2 endpoint.
func (c AppConfig) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

func (c AppConfig) ConfigStringArray() []string {
	configStrArr := make([]string, 0)
	configStrArr = append(configStrArr, fmt.Sprintf("  - Bucket: %s", c.Bucket))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Endpoint: %s", c.Endpoint()))
	configStrArr = append(configStrArr, fmt.Sprintf("  - Concurrent Uploads: %d", c.Concurrency))

	if c.Prefix != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Prefix: %s", c.Prefix))
	}

	if c.SourceFolder != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - Source Folder: %s", c.SourceFolder))
	}

	if c.Notify.Topic != "" {
		configStrArr = append(configStrArr, fmt.Sprintf("  - SNSTopic: %s", c.Notify.Topic))
	}

	return configStrArr
}
