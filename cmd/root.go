package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogFile string
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Medical equipment storefront API",
	Long: `Storefront serves the catalog, session carts, favorites, mock
authentication and checkout of a medical equipment store. Orders are
handed over to a WhatsApp chat with a prefilled message.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "storefront.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog YAML file (defaults to the built-in catalog)")
}
