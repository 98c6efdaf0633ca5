package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/config"
	"github.com/kotobukicho/kotobuki/internal/infrastructure/blob"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

// App-level container for components constructed once at process start and
// torn down at shutdown. The router wires modules from these; nothing is
// lazily re-created mid-request.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	blobStore   *blob.GCSStore
	jwtManager  *helpers.JWTManager
	cleanupPub  *helpers.RabbitPublisher
)

func SetConfig(c *config.Config)               { cfg = c }
func GetConfig() *config.Config                { return cfg }
func SetLogger(l *logrus.Logger)               { logger = l }
func GetLogger() *logrus.Logger                { return logger }
func SetPGPool(p *pgxpool.Pool)                { pgPool = p }
func GetPGPool() *pgxpool.Pool                 { return pgPool }
func SetRedis(r *redis.Client)                 { redisClient = r }
func GetRedis() *redis.Client                  { return redisClient }
func SetBlobStore(s *blob.GCSStore)            { blobStore = s }
func GetBlobStore() *blob.GCSStore             { return blobStore }
func SetJWT(m *helpers.JWTManager)             { jwtManager = m }
func GetJWT() *helpers.JWTManager              { return jwtManager }
func SetCleanupPub(p *helpers.RabbitPublisher) { cleanupPub = p }
func GetCleanupPub() *helpers.RabbitPublisher  { return cleanupPub }
