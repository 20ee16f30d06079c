package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/biduedson/reservas-api/account"
	"github.com/biduedson/reservas-api/account/migrations"
	"github.com/biduedson/reservas-api/api"
	"github.com/biduedson/reservas-api/auth/jwt"
	"github.com/biduedson/reservas-api/auth/password"
	"github.com/biduedson/reservas-api/authz"
	"github.com/biduedson/reservas-api/bootstrap"
	"github.com/biduedson/reservas-api/config"
	"github.com/biduedson/reservas-api/database"
	"github.com/biduedson/reservas-api/logger"
	"github.com/biduedson/reservas-api/observability"
	"github.com/biduedson/reservas-api/resilience"
	"github.com/biduedson/reservas-api/server"
	"github.com/biduedson/reservas-api/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configFile, envFile string
	flags := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	flags.StringVar(&configFile, "config", "", "path to config.yml (default: ./cmd/reservas-api/config.yml)")
	flags.StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env)")
	showVersion := flags.Bool("version", false, "print the version and exit")
	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(version.Short())
		return nil
	}

	var cfg AppConfig
	if err := config.LoadConfig(serviceName, &cfg,
		config.WithConfigFile(configFile),
		config.WithEnvFile(envFile),
	); err != nil {
		return err
	}
	cfg.Version = version.Resolve(cfg.Version)

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}
	app.OnStop(shutdownTelemetry)

	var dbComponent *database.Component
	if cfg.Database.Enabled {
		dbComponent = database.NewComponent(cfg.Database, app.Logger).
			WithAutoMigrate(&account.Account{}).
			WithMigrations(migrations.FS, migrations.Path)
		if err := app.RegisterComponent(dbComponent); err != nil {
			return err
		}
	}

	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
		return configure(ctx, a, dbComponent)
	})

	return app.Run(ctx)
}

// configure wires the account service and HTTP routes once the database is
// up, then starts the HTTP server.
func configure(ctx context.Context, a *bootstrap.App[*AppConfig], dbComponent *database.Component) error {
	cfg := a.Cfg
	log := a.Logger

	var repo account.Repository
	if dbComponent != nil {
		repo = account.NewGormStore(dbComponent.DB())
	} else {
		log.Warn("Database disabled, accounts are kept in memory")
		repo = account.NewMemoryStore()
	}

	hashers, err := password.NewRegistry(cfg.Auth.Password)
	if err != nil {
		return err
	}
	codec, err := jwt.NewCodec(cfg.Auth.JWT)
	if err != nil {
		return err
	}
	validator, err := jwt.NewValidator(cfg.Auth.JWT)
	if err != nil {
		return err
	}
	metrics, err := observability.NewAuthMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return err
	}

	accounts, err := account.NewService(repo, hashers, codec,
		account.WithLogger(log),
		account.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}
	if created, err := accounts.EnsureAdmin(ctx, cfg.Auth.SeedAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	} else if created {
		log.Info("Administrator account created", logger.Fields("email", cfg.Auth.SeedAdmin.Email))
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware(metrics)
	srv.RegisterDefaultEndpoints(cfg.Name, a.Components.HealthAll, a.Components.Ready)
	api.RegisterRoutes(srv.GinEngine(), api.Deps{
		Accounts:     accounts,
		Validator:    validator,
		Checker:      authz.NewMapChecker(authz.DefaultPolicy()),
		LoginLimiter: resilience.NewKeyedLimiter(cfg.RateLimit.Login),
		Metrics:      metrics,
	})

	log.Info("Auth configured", map[string]interface{}{"auth": cfg.Auth.Describe()})

	if err := a.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}
	return a.Components.StartAll(ctx)
}
