// Command inuctl holds operator tasks for an inu deployment.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	jwttoken "inu/internal/jwt_token"
	"inu/internal/platform/config"
	"inu/internal/platform/postgres"
	id "inu/pkg/domain"
)

func main() {
	if err := newRootCmd(config.FromEnv()).Execute(); err != nil {
		os.Exit(1)
	}
}

// Settings inuctl resolves through viper. Precedence: flag, environment,
// config file, then the value config.FromEnv produced.
const (
	keyEnvironment = "environment"
	keyDatabaseURL = "database-url"
	keySigningKey  = "jwt-signing-key"
	keyIssuer      = "jwt-issuer"
	keyAudience    = "jwt-audience"
	keyTokenTTL    = "jwt-ttl"
)

var settingEnv = map[string]string{
	keyEnvironment: "INU_ENV",
	keyDatabaseURL: "DATABASE_URL",
	keySigningKey:  "JWT_SIGNING_KEY",
	keyIssuer:      "JWT_ISSUER",
	keyAudience:    "JWT_AUDIENCE",
	keyTokenTTL:    "JWT_TTL",
}

func newRootCmd(base config.Server) *cobra.Command {
	v := viper.New()
	cfg := base
	var cfgFile string

	root := &cobra.Command{
		Use:          "inuctl",
		Short:        "Operator tooling for the inu naming ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveConfig(v, cfgFile, base)
			if err != nil {
				return err
			}
			cfg = resolved
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "YAML file with inuctl settings")
	flags.String(keyEnvironment, "", "deployment environment (INU_ENV)")
	flags.String(keyDatabaseURL, "", "PostgreSQL URL (DATABASE_URL)")
	flags.String(keySigningKey, "", "HMAC key for bearer tokens (JWT_SIGNING_KEY)")
	flags.String(keyIssuer, "", "token issuer (JWT_ISSUER)")
	flags.String(keyAudience, "", "token audience (JWT_AUDIENCE)")
	flags.Duration(keyTokenTTL, 0, "default token lifetime (JWT_TTL)")
	for key := range settingEnv {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(newTokenCmd(&cfg), newMigrateCmd(&cfg))
	return root
}

// resolveConfig layers flags, environment and an optional config file over base.
func resolveConfig(v *viper.Viper, cfgFile string, base config.Server) (config.Server, error) {
	v.SetDefault(keyEnvironment, base.Environment)
	v.SetDefault(keyDatabaseURL, base.Database.URL)
	v.SetDefault(keySigningKey, base.JWT.SigningKey)
	v.SetDefault(keyIssuer, base.JWT.Issuer)
	v.SetDefault(keyAudience, base.JWT.Audience)
	v.SetDefault(keyTokenTTL, base.JWT.TTL)
	for key, env := range settingEnv {
		_ = v.BindEnv(key, env)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return config.Server{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := base
	cfg.Environment = strings.TrimSpace(v.GetString(keyEnvironment))
	cfg.Database.URL = v.GetString(keyDatabaseURL)
	cfg.JWT.SigningKey = v.GetString(keySigningKey)
	cfg.JWT.Issuer = v.GetString(keyIssuer)
	cfg.JWT.Audience = v.GetString(keyAudience)
	cfg.JWT.TTL = v.GetDuration(keyTokenTTL)
	return cfg, nil
}

func newTokenCmd(cfg *config.Server) *cobra.Command {
	var (
		account string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an account",
		Long: `Mint a bearer token whose subject is the given account, signed with
JWT_SIGNING_KEY and scoped to JWT_ISSUER / JWT_AUDIENCE.

Examples:
  inuctl token --account alice
  inuctl token --account alice --ttl 1h
  inuctl token -c ops.yaml --account alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to mint tokens in production")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			subject, err := id.ParseAccountID(account)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.TTL
			}
			tokens := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
			token, err := tokens.GenerateAccessToken(subject, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&account, "account", "a", "", "account the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default --jwt-ttl)")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newMigrateCmd(cfg *config.Server) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the ledger and outbox tables in DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Database.URL == "" {
				return fmt.Errorf("DATABASE_URL is not set")
			}
			if err := postgres.Migrate(cfg.Database.URL); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return err
		},
	}
}
