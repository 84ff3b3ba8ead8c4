package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodstore-auth/config"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
	"github.com/oksasatya/foodstore-auth/pkg/mailer"
	"github.com/oksasatya/foodstore-auth/pkg/sms"
)

// app-level container to share constructed components across packages.
// Router modules auto-wire their dependencies from these singletons, all
// constructed once in main.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	rabbitPub  *helpers.RabbitPublisher

	mailSender  mailer.Sender
	smsVerifier sms.Verifier
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetMailSender(m mailer.Sender)           { mailSender = m }
func GetMailSender() mailer.Sender            { return mailSender }
func SetSMSVerifier(v sms.Verifier)           { smsVerifier = v }
func GetSMSVerifier() sms.Verifier            { return smsVerifier }
