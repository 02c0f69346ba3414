// Package root contains the root command for the application and the
// shared wiring every subcommand goes through: configuration, logging,
// authentication and session construction.
package root

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/fintrack/internal/auth"
	"fjacquet/fintrack/internal/classifier"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/session"
	"fjacquet/fintrack/internal/storage"
)

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapterFromLogger(nil)

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fintrack",
		Short: "A personal finance tracker: transactions, budgets and summaries.",
		Long: `fintrack records income and expense transactions, auto-categorizes
them from their descriptions, enforces per-category budget limits and
produces financial summaries exportable as text, CSV or JSON.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to fintrack!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("Failed to load configuration")
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
		},
	}

	// Username is the user scope every command operates within
	Username string

	// Password for authentication; FINTRACK_PASSWORD is used when empty
	Password string
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&Username, "user", "u", "", "Username owning the ledger")
	Cmd.PersistentFlags().StringVarP(&Password, "password", "p", "", "Password (or set FINTRACK_PASSWORD)")
}

// Credentials opens the credential store configured for this run.
func Credentials() (*auth.CredentialStore, error) {
	return auth.NewCredentialStore(Cfg.CredentialsPath(), Log)
}

// OpenSession authenticates the --user flag against the credential store
// and builds the session-scoped ledger for that user.
func OpenSession() (*session.Session, error) {
	if Username == "" {
		return nil, fmt.Errorf("--user is required")
	}

	creds, err := Credentials()
	if err != nil {
		return nil, err
	}

	password := Password
	if password == "" {
		password = os.Getenv("FINTRACK_PASSWORD")
	}
	username, err := creds.Authenticate(Username, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	rules, err := classifier.NewTableStore(Cfg.Classifier.TableFile, Log).LoadRules()
	if err != nil {
		return nil, err
	}

	adapter, err := openAdapter()
	if err != nil {
		return nil, err
	}

	return session.Open(username, session.Options{
		Classifier:          classifier.NewKeywordClassifier(rules),
		Adapter:             adapter,
		LowBalanceThreshold: decimal.NewFromFloat(Cfg.Alerts.LowBalanceThreshold),
		Logger:              Log,
	})
}

func openAdapter() (storage.Adapter, error) {
	switch Cfg.Data.Backend {
	case "sqlite":
		return storage.NewSQLiteAdapter(Cfg.SQLitePath())
	default:
		return storage.NewJSONAdapter(Cfg.Data.Directory)
	}
}
