package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/apperr"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults applied when neither the environment nor a flag overrides them.
const (
	DefaultSecretsFile = "secrets.ini"
	DefaultWeatherURL  = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout     = 5 * time.Second
	DefaultGeoProvider = "ipapi"
)

// ErrMissingAPIKey is returned when the secrets file has no openweather api_key.
var ErrMissingAPIKey = errors.New("openweather api_key is not set")

// Config holds the runtime settings of a single nimbus invocation.
//
// Fields:
// - Env: logger profile (local, development, production).
// - SecretsFile: path of the INI file holding the API keys.
// - APIKey: the OpenWeatherMap API key.
// - WeatherURL: current-weather endpoint.
// - Timeout: upper bound for each outbound request.
// - Geolocation: settings for the IP geolocation provider.
type Config struct {
	Env         string
	SecretsFile string
	APIKey      string
	WeatherURL  string
	Timeout     time.Duration
	Geolocation GeolocationConfig
}

// GeolocationConfig selects and configures the provider used when no city is given.
type GeolocationConfig struct {
	ProviderType string // ProviderType is one of ipapi, ipinfo, google.
	APIKey       string // APIKey is the ipinfo token or Google key, optional for ipapi.
	URL          string // URL overrides the provider endpoint when not empty.
}

// Load reads the environment (and a .env file, if present) and the secrets file at secretsPath.
// Every failure is an apperr.ErrConfiguration.
func Load(secretsPath string) (*Config, error) {
	_ = godotenv.Load()

	if secretsPath == "" {
		secretsPath = DefaultSecretsFile
	}

	timeout, err := time.ParseDuration(setDefaultEnv("NIMBUS_TIMEOUT", DefaultTimeout.String()))
	if err != nil {
		return nil, apperr.New(apperr.ErrConfiguration, "Invalid NIMBUS_TIMEOUT value.", err)
	}

	secrets, err := readSecrets(secretsPath)
	if err != nil {
		return nil, err
	}

	apiKey, err := apiKeyFrom(secrets, secretsPath)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:         setDefaultEnv("NIMBUS_ENV", "production"),
		SecretsFile: secretsPath,
		APIKey:      apiKey,
		WeatherURL:  setDefaultEnv("NIMBUS_WEATHER_URL", DefaultWeatherURL),
		Timeout:     timeout,
		Geolocation: GeolocationConfig{
			ProviderType: setDefaultEnv("NIMBUS_GEO_PROVIDER", DefaultGeoProvider),
			APIKey:       secrets.GetString("geolocation.api_key"),
			URL:          os.Getenv("NIMBUS_GEO_URL"),
		},
	}, nil
}

// LoadAPIKey returns the api_key from the openweather section of the INI file at path.
func LoadAPIKey(path string) (string, error) {
	secrets, err := readSecrets(path)
	if err != nil {
		return "", err
	}

	return apiKeyFrom(secrets, path)
}

func readSecrets(path string) (*viper.Viper, error) {
	secrets := viper.New()
	secrets.SetConfigFile(path)
	secrets.SetConfigType("ini")

	if err := secrets.ReadInConfig(); err != nil {
		return nil, apperr.New(
			apperr.ErrConfiguration,
			fmt.Sprintf("Couldn't read secrets file %s.", path),
			err,
		)
	}

	return secrets, nil
}

func apiKeyFrom(secrets *viper.Viper, path string) (string, error) {
	key := secrets.GetString("openweather.api_key")
	if key == "" {
		return "", apperr.New(
			apperr.ErrConfiguration,
			fmt.Sprintf("No api_key in the [openweather] section of %s.", path),
			ErrMissingAPIKey,
		)
	}

	return key, nil
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
