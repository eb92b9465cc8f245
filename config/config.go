package config

import (
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds every runtime knob. All values come from the environment;
// defaults make a bare `go run .` work against a local sqlite file with
// email and image storage disabled.
type Config struct {
	Port        string
	GinMode     string
	DBPath      string
	JWTSecret   string
	FrontendURL string
	ClientDist  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	StripeSecretKey     string
	StripeWebhookSecret string

	S3Region    string
	S3Bucket    string
	S3Endpoint  string
	S3PublicURL string
}

var (
	Cfg *Config

	// Log is the process-wide sugared logger.
	Log *zap.SugaredLogger

	// JWTSecret signs session tokens. Populated by Load.
	JWTSecret []byte
)

// Load reads configuration from the environment and builds the logger.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_PATH", "food_order.db")
	v.SetDefault("JWT_SECRET", "food_order_dev_secret")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("CLIENT_DIST", "frontend/dist")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@food-order.local")
	v.SetDefault("S3_REGION", "auto")

	Cfg = &Config{
		Port:        v.GetString("PORT"),
		GinMode:     v.GetString("GIN_MODE"),
		DBPath:      v.GetString("DB_PATH"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		ClientDist:  v.GetString("CLIENT_DIST"),

		SMTPHost: v.GetString("SMTP_HOST"),
		SMTPPort: v.GetInt("SMTP_PORT"),
		SMTPUser: v.GetString("SMTP_USER"),
		SMTPPass: v.GetString("SMTP_PASS"),
		MailFrom: v.GetString("MAIL_FROM"),

		StripeSecretKey:     v.GetString("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: v.GetString("STRIPE_WEBHOOK_SECRET"),

		S3Region:    v.GetString("S3_REGION"),
		S3Bucket:    v.GetString("S3_BUCKET"),
		S3Endpoint:  v.GetString("S3_ENDPOINT"),
		S3PublicURL: v.GetString("S3_PUBLIC_BASE_URL"),
	}
	JWTSecret = []byte(Cfg.JWTSecret)

	initLogger(Cfg.GinMode != "release")
	return Cfg
}

func initLogger(dev bool) {
	var (
		z   *zap.Logger
		err error
	)
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	Log = z.Sugar()
}
