package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// Gemini transports
const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Calling CallingConfig
	Gemini  GeminiConfig
	Cache   CacheConfig
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port               int
	LogLevel           string
	RateLimitPerMinute int
	RateLimitBurst     int
}

// CallingConfig holds the outbound calling and webhook settings
type CallingConfig struct {
	APIURL         string
	APIKey         string
	AgentID        string
	AgentIDWinback string
	FromNumber     string
	CountryCode    string
	Timezone       string
	WebhookURL     string
	Timeout        time.Duration
	CampaignsFile  string

	// Campaigns maps campaign type to its agent, env slots first then the
	// campaigns file
	Campaigns map[string]models.CampaignRoute
}

// GeminiConfig holds transliteration model configuration
type GeminiConfig struct {
	APIKey    string
	Model     string
	APIURL    string
	Transport string
}

// CacheConfig holds the transliteration memo store configuration
type CacheConfig struct {
	RedisURL  string
	KeyPrefix string
	TTL       time.Duration
}

// Load reads configuration from a .env file, if present, and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	apiPort, err := strconv.Atoi(getEnv("API_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_PORT: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	rateBurst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("OUTBOUND_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OUTBOUND_TIMEOUT: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("TRANSLITERATION_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSLITERATION_CACHE_TTL: %w", err)
	}

	transport := strings.ToLower(getEnv("GEMINI_TRANSPORT", TransportREST))
	if transport != TransportREST && transport != TransportSDK {
		return nil, fmt.Errorf("invalid GEMINI_TRANSPORT %q (must be 'rest' or 'sdk')", transport)
	}

	calling := CallingConfig{
		APIURL:         getEnv("CALL_API_URL", ""),
		APIKey:         getEnv("CALL_API_KEY", ""),
		AgentID:        getEnv("CALL_AGENT_ID", ""),
		AgentIDWinback: getEnv("CALL_AGENT_ID_WINBACK", ""),
		FromNumber:     getEnv("CALL_FROM_NUMBER", ""),
		CountryCode:    getEnv("DEFAULT_COUNTRY_CODE", "+91"),
		Timezone:       getEnv("CALL_TIMEZONE", "Asia/Kolkata"),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		Timeout:        timeout,
		CampaignsFile:  getEnv("CAMPAIGNS_FILE", ""),
	}

	calling.Campaigns, err = campaignRoutes(calling)
	if err != nil {
		return nil, err
	}

	return &Config{
		API: APIConfig{
			Port:               apiPort,
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			RateLimitPerMinute: rateLimit,
			RateLimitBurst:     rateBurst,
		},
		Calling: calling,
		Gemini: GeminiConfig{
			APIKey:    getEnv("GEMINI_API_KEY", ""),
			Model:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			APIURL:    getEnv("GEMINI_API_URL", ""),
			Transport: transport,
		},
		Cache: CacheConfig{
			RedisURL:  getEnv("REDIS_URL", ""),
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", "loan-callback:"),
			TTL:       cacheTTL,
		},
	}, nil
}

// GenerateContentURL returns the REST endpoint for the configured model
func (g *GeminiConfig) GenerateContentURL() string {
	if g.APIURL != "" {
		return g.APIURL
	}
	return fmt.Sprintf("%s/%s:generateContent", defaultGeminiBaseURL, g.Model)
}

type campaignFile struct {
	Campaigns map[string]campaignEntry `yaml:"campaigns"`
}

type campaignEntry struct {
	AgentID    string `yaml:"agent_id"`
	FromNumber string `yaml:"from_number"`
}

// campaignRoutes builds the routing table from the env slots, then lets the
// campaigns file override or add entries
func campaignRoutes(c CallingConfig) (map[string]models.CampaignRoute, error) {
	routes := map[string]models.CampaignRoute{
		models.CampaignGoldLoan: {CampaignType: models.CampaignGoldLoan, AgentID: c.AgentID},
		models.CampaignWinback:  {CampaignType: models.CampaignWinback, AgentID: c.AgentIDWinback},
	}

	if c.CampaignsFile == "" {
		return routes, nil
	}

	data, err := os.ReadFile(c.CampaignsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CAMPAIGNS_FILE: %w", err)
	}

	var doc campaignFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse CAMPAIGNS_FILE %s: %w", c.CampaignsFile, err)
	}

	for name, entry := range doc.Campaigns {
		ct := models.NormalizeCampaignType(name)
		route := routes[ct]
		route.CampaignType = ct
		if entry.AgentID != "" {
			route.AgentID = entry.AgentID
		}
		if entry.FromNumber != "" {
			route.FromNumber = entry.FromNumber
		}
		routes[ct] = route
	}

	return routes, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
