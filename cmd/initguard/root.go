package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/initguard/initguard/internal/initguard/config"
	"github.com/initguard/initguard/internal/initguard/logger"
	"github.com/initguard/initguard/internal/initguard/profiles"
	"github.com/initguard/initguard/pkg/initdata"
)

var (
	cfgFile string
	Version = "v0.1"
	rootCmd = &cobra.Command{
		Use:   "initguard",
		Short: "initguard - Telegram Mini App init data toolkit",
		Long:  "initguard: validate, parse and sign the init data a Telegram Mini App receives at launch.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// load config
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
			} else {
				// default: ./config.yaml
				viper.SetConfigFile("config.yaml")
			}
			if err := viper.ReadInConfig(); err != nil {
				// Most commands work fine from flags alone; note it and move on.
				fmt.Fprintf(os.Stderr, "Warning: could not read config (%v). Using defaults and flags.\n", err)
			}
			if err := config.Load(viper.GetViper()); err != nil {
				return err
			}

			// init logger
			cfg := config.Get()
			if err := logger.InitLogger(cfg.Logging.Level); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize()
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	// add subcommands
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(validate3rdCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveToken picks the bot token from --token or a named profile.
func resolveToken(token, profile string) (string, error) {
	if token != "" {
		return token, nil
	}
	if profile == "" {
		return "", fmt.Errorf("either --token or --profile is required")
	}
	p, err := loadProfile(profile)
	if err != nil {
		return "", err
	}
	return p.Token, nil
}

func loadProfile(name string) (profiles.Profile, error) {
	path := config.Get().ProfilesFile
	if path == "" {
		path = "profiles.yaml"
	}
	f, err := profiles.Load(path)
	if err != nil {
		return profiles.Profile{}, err
	}
	return f.Get(name)
}

// defaultOptions builds validation options from config, overridden by the
// per-command flags when set.
func defaultOptions(cmd *cobra.Command, expiresIn, skew int) *initdata.Options {
	cfg := config.Get()
	opts := &initdata.Options{
		ExpiresIn:     cfg.ExpiresIn(),
		SkewAllowance: cfg.SkewAllowance(),
	}
	if cmd.Flags().Changed("expires-in") {
		opts.ExpiresIn = secondsToDuration(expiresIn)
	}
	if cmd.Flags().Changed("skew") {
		opts.SkewAllowance = secondsToDuration(skew)
	}
	return opts
}
