package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/fitquest/internal"
	"github.com/2beens/fitquest/internal/config"
	"github.com/2beens/fitquest/internal/logging"
	"github.com/2beens/fitquest/pkg"

	log "github.com/sirupsen/logrus"
)

// set with -ldflags "-X main.version=..."
var version = ""

type secrets struct {
	jwtSecret        string
	redisPassword    string
	postgresPassword string
	sentryDSN        string
	honeycombEnabled bool
}

func readSecrets() (secrets, error) {
	s := secrets{
		jwtSecret:        os.Getenv("FITQUEST_JWT_SECRET"),
		redisPassword:    os.Getenv("FITQUEST_REDIS_PASS"),
		postgresPassword: os.Getenv("FITQUEST_DB_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
	if s.jwtSecret == "" {
		return s, errors.New("jwt secret not set, use FITQUEST_JWT_SECRET")
	}
	return s, nil
}

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	envSecrets, err := readSecrets()
	if err != nil {
		log.Fatalln(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        envSecrets.sentryDSN,
		SentryServerName: "fitquest-service",
	})
	log.Warnf("---->> running in [%s] environment, port %d", cfg.Environment, cfg.Port)

	if envSecrets.redisPassword == "" {
		log.Warnln("redis password not set, use FITQUEST_REDIS_PASS")
	}
	if envSecrets.honeycombEnabled {
		if os.Getenv("HONEYCOMB_API_KEY") == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
		if os.Getenv("OTEL_SERVICE_NAME") == "" {
			log.Warnln("OTEL_SERVICE_NAME env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	versionInfo := resolveVersion()
	log.Debugf("running version: [%s]", versionInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			JWTSecret:               envSecrets.jwtSecret,
			VersionInfo:             versionInfo,
			PostgresPassword:        envSecrets.postgresPassword,
			RedisPassword:           envSecrets.redisPassword,
			HoneycombTracingEnabled: envSecrets.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")
	server.GracefulShutdown()
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	commit, err := lastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash: %s", err)
		return "unknown"
	}
	return commit
}

// lastCommitHash assumes the binary runs from within the repo
func lastCommitHash() (string, error) {
	stdout, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
