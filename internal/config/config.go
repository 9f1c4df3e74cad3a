package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DataDir   string
	UploadDir string
	PublicDir string
	LogFile   string

	// Fixed credentials for the legacy single-tenant admin and the
	// master/operator panel.
	AdminUser  string
	AdminPass  string
	MasterUser string
	MasterPass string

	// Contact bridge.
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	ToEmail        string
	FromEmail      string
	SendGridAPIKey string

	// Remote media provider (S3-compatible). Enabled when bucket and both
	// keys are set.
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	cfg := Config{
		Port:      getenv("PORT", "3000"),
		DataDir:   getenv("DATA_DIR", "./data"),
		UploadDir: getenv("UPLOADS_DIR", "./uploads"),
		PublicDir: getenv("PUBLIC_DIR", "./web/public"),
		LogFile:   os.Getenv("LOG_FILE"),

		AdminUser:  getenv("ADMIN_USER", "admin"),
		AdminPass:  getenv("ADMIN_PASS", "admin123"),
		MasterUser: getenv("MASTER_USER", "master"),
		MasterPass: getenv("MASTER_PASS", "master123"),

		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		ToEmail:        os.Getenv("TO_EMAIL"),
		FromEmail:      os.Getenv("FROM_EMAIL"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        getenv("S3_REGION", "us-east-1"),
		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
	}
	log.Printf("[config] PORT=%s DATA_DIR=%s UPLOADS_DIR=%s PUBLIC_DIR=%s s3=%t sendgrid=%t smtp=%t",
		cfg.Port, cfg.DataDir, cfg.UploadDir, cfg.PublicDir,
		cfg.S3Enabled(), cfg.SendGridAPIKey != "", cfg.SMTPHost != "")
	return cfg
}

// S3Enabled reports whether the remote media provider credentials are set.
func (c Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
