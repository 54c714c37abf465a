package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/commands"
	"ems/backend/internal/pkg/config"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/router"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := run(logger); err != nil {
		logger.WithError(err).Fatal("startup failed")
	}
}

func run(logger *logrus.Logger) error {
	// Missing .env is fine in deployments where the environment is set by the
	// orchestrator.
	_ = godotenv.Load()

	var webCfg struct {
		conf.Version
		Web struct {
			APIHost         string        `conf:"default:0.0.0.0:8080"`
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
		}
	}
	webCfg.Version.SVN = "1.0"
	webCfg.Version.Desc = "employee management service"

	if err := conf.Parse(os.Args[1:], "EMS", &webCfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("EMS", &webCfg)
			if err != nil {
				return err
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("EMS", &webCfg)
			if err != nil {
				return err
			}
			fmt.Println(version)
			return nil
		}
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	postgresDB := postgresql.NewDatabase(postgresql.Config{
		Addr:       cfg.DBHost + ":" + cfg.DBPort,
		User:       cfg.DBUsername,
		Password:   cfg.DBPassword,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
		Debug:      cfg.DebugSQL,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.NewAuth(cfg.JWTKey)
	if err != nil {
		return err
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	logger.WithField("host", webCfg.Web.APIHost).Info("starting api")

	return router.NewRouter(app, postgresDB, redisDB, webCfg.Web.APIHost, authenticator, logger, cfg).Init()
}
