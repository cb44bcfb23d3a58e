package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/corvusHold/leasedesk/internal/logger"
	"github.com/corvusHold/leasedesk/internal/mergefields"
	"github.com/corvusHold/leasedesk/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by every command of one invocation.
type app struct {
	v         *viper.Viper
	cfgFile   string
	outputFmt string
	verbose   bool
	log       zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logger.Nop()}
	root := &cobra.Command{
		Use:   "leasedesk",
		Short: "leasedesk - lease renewals, extensions and document delivery",
		Long: `leasedesk computes lease renewals and extensions, names and fills lease
documents from templates and prepares their delivery by email or WhatsApp.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.leasedesk.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&a.outputFmt, "output", "o", "table", "output format (table, json, yaml)")
	root.PersistentFlags().String("landlord-name", "", "landlord name used in documents and messages")
	root.PersistentFlags().String("landlord-phone", "", "landlord phone")
	root.PersistentFlags().String("landlord-email", "", "landlord email")

	_ = a.v.BindPFlag("landlord_name", root.PersistentFlags().Lookup("landlord-name"))
	_ = a.v.BindPFlag("landlord_phone", root.PersistentFlags().Lookup("landlord-phone"))
	_ = a.v.BindPFlag("landlord_email", root.PersistentFlags().Lookup("landlord-email"))
	a.v.SetDefault("tolerance_days", 3)
	a.v.SetDefault("channel", "email")

	root.AddCommand(
		a.renewCmd(),
		a.extendCmd(),
		a.increaseCmd(),
		a.nameCmd(),
		a.resolveCmd(),
		a.sendCmd(),
		a.versionCmd(),
	)
	return root
}

func (a *app) init(stderr io.Writer) error {
	switch a.outputFmt {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (table, json, yaml)", a.outputFmt)
	}

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".leasedesk")
	}

	// Environment variables
	a.v.SetEnvPrefix("LEASEDESK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !asNotFound(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if a.verbose {
		a.log = logger.NewTo(stderr, "development")
		if used := a.v.ConfigFileUsed(); used != "" {
			a.log.Debug().Str("file", used).Msg("using config file")
		}
	}
	return nil
}

func (a *app) landlord() mergefields.Landlord {
	return mergefields.Landlord{
		Name:  a.v.GetString("landlord_name"),
		Phone: a.v.GetString("landlord_phone"),
		Email: a.v.GetString("landlord_email"),
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(cmd.OutOrStdout(), map[string]string{"version": version.String()}, func(t *table) {
				t.row("Version", version.String())
			})
		},
	}
}
