package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/nhle/task-planner/internal/app"
	"github.com/nhle/task-planner/internal/credential"
	"github.com/nhle/task-planner/internal/logging"
	"github.com/nhle/task-planner/internal/model"
	"github.com/nhle/task-planner/internal/ui/taskform"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "taskplanner: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("taskplanner", pflag.ContinueOnError)
	configPath := flags.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flags.String("driver", "", "database driver: sqlite, mysql, postgres or memory")
	flags.String("dsn", "", "database connection string, overrides the other database settings")
	flags.String("db-path", "", "sqlite database file")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	initConfig := flags.Bool("init-config", false, "write the effective configuration to --config and exit")
	setPassword := flags.Bool("set-password", false, "store the database password in the system keyring and exit")
	forgetPassword := flags.Bool("forget-password", false, "remove the stored database password and exit")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := model.LoadConfig(*configPath, flags)
	if err != nil {
		return err
	}

	if *initConfig {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *configPath)
		return nil
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "taskplanner: %v; logging to stderr\n", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialogs := taskform.New()

	if *setPassword || *forgetPassword || cfg.Database.NeedsPassword() {
		vault, err := credential.Open(model.ConfigDir())
		if err != nil {
			return err
		}

		switch {
		case *setPassword:
			if err := app.SetPassword(ctx, &cfg.Database, vault, dialogs); err != nil {
				return err
			}
			fmt.Println("password stored")
			return nil
		case *forgetPassword:
			if err := app.ForgetPassword(cfg.Database, vault); err != nil {
				return err
			}
			fmt.Println("password removed")
			return nil
		}

		if err := app.ResolvePassword(ctx, &cfg.Database, vault, dialogs, logger); err != nil {
			return err
		}
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("startup failed")
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}
