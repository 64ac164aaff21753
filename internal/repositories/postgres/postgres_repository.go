package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ScholarStream/scholarship-service/internal/cache"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface over one
// shared *gorm.DB handle.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user        repositories.UserRepository
	scholarship repositories.ScholarshipRepository
	application repositories.ApplicationRepository
	review      repositories.ReviewRepository
}

// RepositoryConfig holds the shared connections the repositories run on.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	return &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
		user:        NewUserPostgreSQL(config.DB),
		scholarship: NewScholarshipPostgreSQL(config.DB, cacheManager),
		application: NewApplicationPostgreSQL(config.DB),
		review:      NewReviewPostgreSQL(config.DB),
	}
}

func (r *PostgreSQLRepository) User() repositories.UserRepository               { return r.user }
func (r *PostgreSQLRepository) Scholarship() repositories.ScholarshipRepository { return r.scholarship }
func (r *PostgreSQLRepository) Application() repositories.ApplicationRepository { return r.application }
func (r *PostgreSQLRepository) Review() repositories.ReviewRepository           { return r.review }

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
