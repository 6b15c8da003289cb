package config

import (
	"os"
	"strings"
	"time"

	pkgcfg "github.com/Shauryam-singh/bolt-and-spark-web-sub000/pkg/config"
)

// Config is the storefront server configuration. Optional integrations
// (Kafka, Elasticsearch, Firebase, SendGrid) stay disabled while their
// settings are empty.
type Config struct {
	pkgcfg.Config

	AdminEmails []string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	SendGridAPIKey string
	MailFrom       string
	ContactInbox   string

	CategoryCacheTTL time.Duration
	NotifyChannel    string

	CORSOrigins  []string
	CSRFEnabled  bool
	CookieSecure bool
}

func Load() *Config {
	return &Config{
		Config: pkgcfg.Load(),

		AdminEmails: lowerAll(pkgcfg.CSV(os.Getenv("ADMIN_EMAILS"))),

		AccessTTL:  pkgcfg.EnvDurationDefault("ACCESS_TTL", 15*time.Minute),
		RefreshTTL: pkgcfg.EnvDurationDefault("REFRESH_TTL", 7*24*time.Hour),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    pkgcfg.EnvDefault("ES_INDEX", "products"),

		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       pkgcfg.EnvDefault("MAIL_FROM", "no-reply@boltandspark.com"),
		ContactInbox:   os.Getenv("CONTACT_INBOX"),

		CategoryCacheTTL: pkgcfg.EnvDurationDefault("CATEGORY_CACHE_TTL", 5*time.Minute),
		NotifyChannel:    pkgcfg.EnvDefault("NOTIFY_CHANNEL", "catalog_changed"),

		CORSOrigins:  pkgcfg.CSV(os.Getenv("CORS_ORIGINS")),
		CSRFEnabled:  pkgcfg.EnvBoolDefault("CSRF_ENABLED", true),
		CookieSecure: pkgcfg.EnvBoolDefault("COOKIE_SECURE", true),
	}
}

func lowerAll(in []string) []string {
	for i := range in {
		in[i] = strings.ToLower(in[i])
	}
	return in
}
