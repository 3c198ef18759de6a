package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "foremanbot",
	Short: "Chat bot that looks up hosts in Foreman",
	Long: `foremanbot answers greetings, direct messages and the /f slash command
on Slack and Telegram by searching the Foreman hosts API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ./config.toml)")
	rootCmd.AddCommand(serveCmd, lookupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
