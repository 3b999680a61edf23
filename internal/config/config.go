package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds process settings read from the environment. Adapters check
// their own required fields when called, so a partially configured process
// still serves the parts that work.
type Config struct {
	Port            string
	BaseURL         string
	Env             string
	LogLevel        string
	LogPretty       bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	AirtableAPIKey        string
	AirtableBaseID        string
	AirtableURL           string
	AirtableLeadsTable    string
	AirtableEventsTable   string
	AirtableReferrerTable string

	Auth0Domain       string
	Auth0ClientID     string
	Auth0ClientSecret string
	// Auth0MgmtClientID and secret fall back to the login client when unset.
	Auth0MgmtClientID     string
	Auth0MgmtClientSecret string
	Auth0ResetResultURL   string
	SessionCookieSecure   bool

	MailProvider  string
	MailFromEmail string
	MailFromName  string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SendGridKey   string
	AWSRegion     string

	RedisURL        string
	AMQPURL         string
	RateLimitPerMin int
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         strings.TrimRight(getEnv("BASE_URL", "https://salt-and-serenity.com"), "/"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOG_PRETTY", false),
		ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		AirtableAPIKey:        getEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID:        getEnv("AIRTABLE_BASE_ID", ""),
		AirtableURL:           getEnv("AIRTABLE_URL", "https://api.airtable.com/v0"),
		AirtableLeadsTable:    getEnv("AIRTABLE_TABLE_NAME", "Leads"),
		AirtableEventsTable:   getEnv("AIRTABLE_TABLE_NAME_EVENTS", ""),
		AirtableReferrerTable: getEnv("AIRTABLE_TABLE_NAME_REFERRERS", "Referrers"),

		Auth0Domain:           strings.TrimSuffix(strings.TrimPrefix(getEnv("AUTH0_DOMAIN", ""), "https://"), "/"),
		Auth0ClientID:         getEnv("AUTH0_CLIENT_ID", ""),
		Auth0ClientSecret:     getEnv("AUTH0_CLIENT_SECRET", ""),
		Auth0MgmtClientID:     getEnv("AUTH0_MGMT_CLIENT_ID", getEnv("AUTH0_CLIENT_ID", "")),
		Auth0MgmtClientSecret: getEnv("AUTH0_MGMT_CLIENT_SECRET", getEnv("AUTH0_CLIENT_SECRET", "")),
		Auth0ResetResultURL:   getEnv("AUTH0_RESET_RESULT_URL", "https://salt-and-serenity.com/reset-complete"),
		SessionCookieSecure:   getEnvAsBool("SESSION_COOKIE_SECURE", true),

		MailProvider:  strings.ToLower(getEnv("MAIL_PROVIDER", "log")),
		MailFromEmail: getEnv("MAIL_FROM_EMAIL", "hello@salt-and-serenity.com"),
		MailFromName:  getEnv("MAIL_FROM_NAME", "Salt & Serenity"),
		SMTPHost:      getEnv("MAIL_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnvAsInt("MAIL_PORT", 587),
		SMTPUser:      getEnv("MAIL_USER", ""),
		SMTPPassword:  getEnv("MAIL_PASS", ""),
		SendGridKey:   getEnv("SENDGRID_API_KEY", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),

		RedisURL:        getEnv("REDIS_URL", ""),
		AMQPURL:         getEnv("AMQP_URL", ""),
		RateLimitPerMin: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
