package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"mediawatch.dev/backend/internal/app/appconfig"
)

// S3 returns the client used to archive complaints. Static credentials are
// used when configured, the default AWS credential chain otherwise.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.ArchiveS3Region),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Error().Err(err).Msg("infra: s3: failed to load aws config")
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.RetryMaxAttempts = 5
		o.RetryMode = aws.RetryModeAdaptive
	}), nil
}
