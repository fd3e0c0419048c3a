package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "buddyd",
	Short: "buddyd: personalized AI companion backend",
	Long: `buddyd is a conversational companion backend with emotion awareness,
per-user memory, and topic routing. Math, emotional support, decisions,
trivia, and knowledge questions are answered locally; everything else is
delegated to a model provider (Groq or Ollama).`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print buddyd version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buddyd version %s\n", version)
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
