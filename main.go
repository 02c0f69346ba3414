package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/cmd/add"
	budgetcmd "fjacquet/fintrack/cmd/budget"
	"fjacquet/fintrack/cmd/export"
	"fjacquet/fintrack/cmd/imports"
	"fjacquet/fintrack/cmd/list"
	"fjacquet/fintrack/cmd/register"
	"fjacquet/fintrack/cmd/remove"
	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/cmd/summary"
	"fjacquet/fintrack/cmd/update"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables before any logging happens.
	loadEnvSilently()

	// Configure the global log level directly so every logger created
	// afterwards inherits it. The config file may refine it later.
	configureLogLevelDirectly()

	root.Init()

	root.Cmd.AddCommand(register.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(update.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(budgetcmd.Cmd)
	root.Cmd.AddCommand(summary.Cmd)
	root.Cmd.AddCommand(imports.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus instances
func configureLogLevelDirectly() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
