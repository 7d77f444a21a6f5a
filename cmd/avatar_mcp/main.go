// Package main runs the avatar MCP server over stdio, for local use from
// MCP capable editors and assistants.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/fitquest/internal/avatar"
	avatarmcp "github.com/2beens/fitquest/internal/avatar/mcp"
	"github.com/2beens/fitquest/internal/config"
	"github.com/2beens/fitquest/internal/db"
	"github.com/2beens/fitquest/internal/logging"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	logsPath := flag.String("logs", "", "log file path, stdout is reserved for the MCP protocol")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// stdout carries the protocol, never log to it
	log.SetOutput(os.Stderr)
	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		Console:     os.Stderr,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     os.Getenv("FITQUEST_DB_PASS"),
		MaxConns:       2,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	server := avatarmcp.NewServer(avatar.NewRepo(dbPool), avatar.NewBossCurve(), "1.0.0")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
