package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Commands carrying this annotation run without opening the stores.
const skipWireAnnotation = "pbx.skip-wire"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	app := &app{}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "pbx",
		Short:         "PABX plan entitlements: expiration status, stats and notices",
		Long:          "pbx evaluates how long each PABX account's plan remains valid, summarizes the account base, and records expiration notices for accounts close to or past their plan's end.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			if err := loadConfig(cfg, configPath); err != nil {
				return err
			}

			wired, err := wireApp(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			*app = *wired
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.pbx/config.toml)")
	if err := registerGlobalFlags(rootCmd.PersistentFlags(), cfg); err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStatusCmd(app),
		newStatsCmd(app),
		newAccountCmd(app),
		newPlanCmd(app),
		newNotifyCmd(app),
	)

	return rootCmd
}
