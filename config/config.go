package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/logger"
	"github.com/hashicorp/hcl"
	"github.com/pkg/errors"

	"github.com/datar-psa/evalreport/reporting"
)

const (
	defaultTimeoutSeconds      = 30
	defaultJudgeModel          = "gemini-2.5-flash"
	defaultEmbeddingModel      = "text-embedding-005"
	defaultGoogleRegion        = "us-central1"
	defaultWaitAttempts        = 10
	defaultWaitIntervalSeconds = 5
)

type Config struct {
	Debug               bool               `hcl:"debug"`
	ApiURL              string             `hcl:"api_url"`
	TimeoutSeconds      int                `hcl:"timeout_seconds"`
	AuthToken           string             `hcl:"auth_token"`
	UserID              string             `hcl:"user_id"`
	ResourceID          string             `hcl:"resource_id"`
	ResourceName        string             `hcl:"resource_name"`
	GoogleProject       string             `hcl:"google_project"`
	GoogleRegion        string             `hcl:"google_region"`
	JudgeModel          string             `hcl:"judge_model"`
	EmbeddingModel      string             `hcl:"embedding_model"`
	ModerationThreshold float64            `hcl:"moderation_threshold"`
	WaitAttempts        int                `hcl:"wait_attempts"`
	WaitIntervalSeconds int                `hcl:"wait_interval_seconds"`
	Metadata            reporting.Metadata `hcl:"metadata"`
}

// LoadConfig reads filename, applies defaults and then environment overrides.
// An empty filename skips the file.
func LoadConfig(filename string, log *logger.Logger) (*Config, error) {
	if log == nil {
		log = logger.Init("config", false, false, io.Discard)
	}
	if filename == "" {
		return LoadConfigFromString("", log)
	}

	log.Infof("Loading config %s", filename)
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", filename)
	}
	return LoadConfigFromString(string(configBytes), log)
}

// LoadConfigFromString parses HCL data, applies defaults and then environment overrides.
func LoadConfigFromString(data string, log *logger.Logger) (*Config, error) {
	if log == nil {
		log = logger.Init("config", false, false, io.Discard)
	}

	config := &Config{}
	if err := hcl.Decode(config, data); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if config.ApiURL == "" {
		config.ApiURL = reporting.DefaultBaseURL
	}
	if config.TimeoutSeconds == 0 {
		config.TimeoutSeconds = defaultTimeoutSeconds
	}
	if config.JudgeModel == "" {
		config.JudgeModel = defaultJudgeModel
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = defaultEmbeddingModel
	}
	if config.GoogleRegion == "" {
		config.GoogleRegion = defaultGoogleRegion
	}
	if config.WaitAttempts == 0 {
		config.WaitAttempts = defaultWaitAttempts
	}
	if config.WaitIntervalSeconds == 0 {
		config.WaitIntervalSeconds = defaultWaitIntervalSeconds
	}
	if config.ResourceID == "" {
		config.ResourceID = config.Metadata.ResourceID
	}
	if config.ResourceName == "" {
		config.ResourceName = config.Metadata.ResourceName
	}

	config.applyEnv()
	if config.TimeoutSeconds <= 0 {
		log.Warningf("timeout_seconds %d is not positive, using %d", config.TimeoutSeconds, defaultTimeoutSeconds)
		config.TimeoutSeconds = defaultTimeoutSeconds
	}
	log.V(1).Infof("metrics API %s, provider %q", config.ApiURL, config.Metadata.Provider)

	return config, nil
}

// applyEnv overrides settings that usually come from the environment.
func (config *Config) applyEnv() {
	config.AuthToken = getEnv("CV_AUTH_TOKEN", config.AuthToken)
	config.UserID = getEnv("CV_USER_ID", config.UserID)
	config.ApiURL = getEnv("CV_API_URL", config.ApiURL)
	config.GoogleProject = getEnv("GOOGLE_PROJECT_ID", config.GoogleProject)
	config.GoogleRegion = getEnv("GOOGLE_REGION", config.GoogleRegion)
	config.TimeoutSeconds = getEnvAsInt("CV_TIMEOUT_SECONDS", config.TimeoutSeconds)
	config.Debug = getEnvAsBool("CV_DEBUG", config.Debug)
}

func (config *Config) Timeout() time.Duration {
	return time.Duration(config.TimeoutSeconds) * time.Second
}

func (config *Config) WaitInterval() time.Duration {
	return time.Duration(config.WaitIntervalSeconds) * time.Second
}

func (config *Config) Credentials() reporting.Credentials {
	return reporting.Credentials{AuthToken: config.AuthToken, UserID: config.UserID}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an integer environment variable or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool reads a boolean environment variable or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
