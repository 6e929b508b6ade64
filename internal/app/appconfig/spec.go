package appconfig

import (
	"time"

	"mediawatch.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:3001"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogLevel is the minimum level of the logs written. Ignored in DevMode, which always logs at trace level.
	LogLevel string `split_words:"true" default:"debug"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// AllowedOrigins is the list of origins allowed to make credentialed cross-origin requests,
	// typically the frontend deployments.
	AllowedOrigins []string `split_words:"true" default:"http://localhost:3000,http://localhost:5173"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: jaeger, otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"otlp"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// NatsURL is the URL of the NATS server. See https://pkg.go.dev/github.com/nats-io/nats.go#Connect
	// for more information on how to construct a NATS URL.
	NatsURL string `required:"true" split_words:"true" default:"nats://127.0.0.1:4222"`

	// RedisURL is the URL of the Redis server. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `required:"true" split_words:"true" default:"redis://127.0.0.1:6379/0"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API. Leaving this empty disables the admin API.
	AdminKey string `split_words:"true"`

	// GenAIAPIKey is the API key of the hosted language model used to draft complaint letters.
	// Leaving this empty disables letter generation.
	GenAIAPIKey string `envconfig:"GENAI_API_KEY"`

	// GenAIModel is the model name used to draft complaint letters.
	GenAIModel string `envconfig:"GENAI_MODEL" default:"gemini-2.5-flash"`

	// LetterMaxOutputTokens caps the length of a generated letter.
	LetterMaxOutputTokens int32 `split_words:"true" default:"2000"`

	// LetterGenerationTimeout is the timeout of a single generation attempt.
	LetterGenerationTimeout time.Duration `split_words:"true" default:"60s"`

	// SMTPHost is the SMTP relay used to deliver complaints. Leaving this empty disables delivery:
	// dispatch tasks stay in the queue until a relay is configured.
	SMTPHost string `envconfig:"SMTP_HOST"`

	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`

	// MailFromAddress is the envelope sender of complaint emails. Replies go to the complainant.
	MailFromAddress string `split_words:"true" default:"noreply@mediawatch.dev"`

	// MailFromName is the display name of the sender, also used for the X-Sent-Via header.
	MailFromName string `split_words:"true" default:"MediaWatch Accountability Platform"`

	// RateLimitMax is the number of /api requests a single IP may issue within RateLimitWindow.
	RateLimitMax int `split_words:"true" default:"100"`

	RateLimitWindow time.Duration `split_words:"true" default:"15m"`

	// LetterRateLimitMax is the number of letter generation requests a single IP may issue within LetterRateLimitWindow.
	LetterRateLimitMax int `split_words:"true" default:"10"`

	LetterRateLimitWindow time.Duration `split_words:"true" default:"1h"`

	// BcryptCost is the cost factor used to hash account passwords.
	BcryptCost int `split_words:"true" default:"12"`

	// WorkerEnabled is a flag to indicate whether to consume complaint dispatch tasks in this instance.
	WorkerEnabled bool `split_words:"true" default:"true"`

	// DispatchWorkerCount is the number of concurrent dispatch consumers in this instance.
	DispatchWorkerCount int `split_words:"true" default:"2"`

	// ArchiveS3Region is the region of the bucket sent complaints are archived to.
	ArchiveS3Region string `envconfig:"ARCHIVE_S3_REGION" default:"eu-west-2"`

	// ArchiveS3Bucket is the bucket sent complaints are archived to.
	ArchiveS3Bucket string `envconfig:"ARCHIVE_S3_BUCKET"`

	// ArchiveS3Prefix is the key prefix inside ArchiveS3Bucket, with no leading slash but typically with a trailing slash.
	ArchiveS3Prefix string `envconfig:"ARCHIVE_S3_PREFIX" default:"v1/"`

	// ArchiveBatchSize is the number of complaints read from the database per page while archiving.
	ArchiveBatchSize int `split_words:"true" default:"500"`

	AWSAccessKey string `envconfig:"AWS_ACCESS_KEY"`
	AWSSecretKey string `envconfig:"AWS_SECRET_KEY"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
