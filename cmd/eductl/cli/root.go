package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/noah-isme/edu-advisor-api/pkg/config"
)

// VersionInfo is stamped at build time.
type VersionInfo struct {
	Version string
	Commit  string
}

const defaultAPIURL = "http://localhost:8080/api"

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "eductl",
		Short:         "EDU Advisor dashboard client",
		Long:          "Fetch, filter and export enquiries, consultant reports and admissions from the EDU Advisor API.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "env file (default is ./.env)")
	cmd.PersistentFlags().String("api-url", defaultAPIURL, "API base url including the prefix")
	cmd.PersistentFlags().String("username", "", "admin username")
	cmd.PersistentFlags().String("password", "", "admin password")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("timezone", "", "display timezone for dates (default Asia/Kolkata)")

	viper.BindPFlag("API_URL", cmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("ADMIN_USERNAME", cmd.PersistentFlags().Lookup("username"))
	viper.BindPFlag("ADMIN_PASSWORD", cmd.PersistentFlags().Lookup("password"))
	viper.BindPFlag("LOG_LEVEL", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("DISPLAY_TIMEZONE", cmd.PersistentFlags().Lookup("timezone"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}

func initConfig(path string) error {
	if path == "" {
		path = ".env"
	}
	config.SetDefaults(viper.GetViper())
	viper.SetDefault("API_URL", defaultAPIURL)
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.SetEnvPrefix("EDUCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return nil
}
