// Package bootstrap initializes the runtime infrastructure shared by the
// application commands.
package bootstrap

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"stuntcare/internal/auth"
	"stuntcare/internal/blob"
	"stuntcare/internal/cache"
	"stuntcare/internal/config"
	"stuntcare/internal/storage"
)

// Runtime holds the initialized infrastructure dependencies.
type Runtime struct {
	Store    storage.EntityStore
	Blobs    blob.Store
	Provider auth.Provider
	Redis    *redis.Client
}

// InitRuntime builds the AWS clients, the Redis client and the auth provider
// from configuration. Redis may come back nil when unreachable; callers treat
// that as caching disabled.
func InitRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// Local development points at dynamodb-local.
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = &cfg.DynamoEndpoint
		}
	})
	s3Client := s3.NewFromConfig(awsCfg)

	store := storage.NewDynamoStore(dynamoClient, cfg.TablePrefix)

	return &Runtime{
		Store:    store,
		Blobs:    blob.NewS3Store(s3Client, cfg.StorageBucket, cfg.AWSRegion),
		Provider: auth.NewJWTProvider(store, cfg.SessionSecret),
		Redis:    cache.Connect(cfg.RedisURL),
	}, nil
}
