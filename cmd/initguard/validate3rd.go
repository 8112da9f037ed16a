package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/initguard/initguard/internal/initguard/config"
	"github.com/initguard/initguard/internal/initguard/logger"
	"github.com/initguard/initguard/pkg/initdata"
)

var (
	v3FlagBotID     int64
	v3FlagEnv       string
	v3FlagProfile   string
	v3FlagExpiresIn int
	v3FlagSkew      int
)

var validate3rdCmd = &cobra.Command{
	Use:   "validate3rd [init-data]",
	Short: "Validate init data with the platform's public key (no bot token needed)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate3rd,
}

func init() {
	validate3rdCmd.Flags().Int64Var(&v3FlagBotID, "bot-id", 0, "bot identifier the init data was issued for")
	validate3rdCmd.Flags().StringVar(&v3FlagEnv, "environment", "", "platform environment: production|test")
	validate3rdCmd.Flags().StringVar(&v3FlagProfile, "profile", "", "named profile supplying bot-id and environment")
	validate3rdCmd.Flags().IntVar(&v3FlagExpiresIn, "expires-in", 86400, "max accepted age in seconds (0 disables)")
	validate3rdCmd.Flags().IntVar(&v3FlagSkew, "skew", 0, "accepted clock skew in seconds")
}

func runValidate3rd(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	botID := v3FlagBotID
	env := v3FlagEnv
	if v3FlagProfile != "" {
		p, err := loadProfile(v3FlagProfile)
		if err != nil {
			return err
		}
		if botID == 0 {
			botID = p.BotID
		}
		if env == "" {
			env = p.Environment
		}
	}
	if botID == 0 {
		botID = cfg.ThirdParty.BotID
	}
	if env == "" {
		env = cfg.ThirdParty.Environment
	}
	if botID == 0 {
		return fmt.Errorf("--bot-id is required")
	}

	raw, err := initDataArg(args)
	if err != nil {
		return err
	}

	opts := defaultOptions(cmd, v3FlagExpiresIn, v3FlagSkew)
	if err := initdata.Validate3rd(raw, botID, initdata.Environment(env), opts); err != nil {
		logger.L().Infow("validate3rd: rejected", "kind", errorKind(err), "environment", env)
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("valid")
	return nil
}
