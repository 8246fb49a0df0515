package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/imagegenhub/imagegenhub/config"
	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/internal/domain/repository"
	"github.com/imagegenhub/imagegenhub/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	notifier   *application.Notifier

	memeRepo    repository.MemeRepository
	sessionRepo repository.SessionRepository

	authService *application.AuthService
	memeService *application.MemeService
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetNotifier(n *application.Notifier) { notifier = n }
func GetNotifier() *application.Notifier {
	if notifier == nil {
		notifier = application.NewNotifier()
	}
	return notifier
}

func SetMemeRepo(r repository.MemeRepository)       { memeRepo = r }
func GetMemeRepo() repository.MemeRepository        { return memeRepo }
func SetSessionRepo(r repository.SessionRepository) { sessionRepo = r }
func GetSessionRepo() repository.SessionRepository  { return sessionRepo }

func SetAuthService(s *application.AuthService) { authService = s }
func GetAuthService() *application.AuthService  { return authService }
func SetMemeService(s *application.MemeService) { memeService = s }
func GetMemeService() *application.MemeService  { return memeService }
