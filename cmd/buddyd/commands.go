package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalambet/buddyd/internal/config"
)

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Send a message to the companion",
	Long: `Send a message to the companion and print the reply.

Examples:
  buddyd chat "what is 20% of 80?"
  buddyd chat --user alice "I'm feeling a bit down today"
  buddyd chat --stream "tell me about your day"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.Join(args, " ")
		userID, _ := cmd.Flags().GetString("user")
		stream, _ := cmd.Flags().GetBool("stream")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		body := map[string]any{"user_id": userID, "message": message}

		if stream {
			resp, err := client.post(cmd.Context(), "/api/chat/stream", body)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode >= 400 {
				return fmt.Errorf("server returned %d", resp.StatusCode)
			}

			scanner := bufio.NewScanner(resp.Body)
			for scanner.Scan() {
				data, ok := strings.CutPrefix(scanner.Text(), "data: ")
				if !ok {
					continue
				}
				var ev struct {
					Token string `json:"token"`
					Error string `json:"error"`
					Done  bool   `json:"done"`
				}
				if err := json.Unmarshal([]byte(data), &ev); err != nil {
					continue
				}
				if ev.Error != "" {
					fmt.Println()
					printError("%s", ev.Error)
					return nil
				}
				fmt.Print(ev.Token)
				if ev.Done {
					break
				}
			}
			fmt.Println()
			return scanner.Err()
		}

		resp, err := client.post(cmd.Context(), "/api/chat", body)
		if err != nil {
			return err
		}

		var reply struct {
			Response  string  `json:"response"`
			Topic     string  `json:"topic"`
			Emotion   string  `json:"emotion"`
			Sentiment float64 `json:"sentiment"`
		}
		if err := decodeJSON(resp, &reply); err != nil {
			return err
		}

		fmt.Println(reply.Response)
		fmt.Fprintf(os.Stderr, "\n%s topic=%s emotion=%s sentiment=%.2f\n",
			colorize(colorCyan, "·"), reply.Topic, reply.Emotion, reply.Sentiment)
		return nil
	},
}

func init() {
	chatCmd.Flags().String("user", "default", "user identifier")
	chatCmd.Flags().Bool("stream", false, "stream the reply token by token")
}

// --- memory ---

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or erase what the companion remembers",
}

var memoryShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show a user's learned profile as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/api/memory/"+args[0])
		if err != nil {
			return err
		}

		var summary any
		if err := decodeJSON(resp, &summary); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

var memoryEraseCmd = &cobra.Command{
	Use:   "erase <user>",
	Short: "Permanently delete everything stored about a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			printWarning("This will delete ALL data for user %q. Use --confirm to proceed.", args[0])
			return nil
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/api/memory/"+args[0])
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Erased all data for user %s", args[0])
		return nil
	},
}

var memoryInteractionsCmd = &cobra.Command{
	Use:   "interactions <user>",
	Short: "List a user's recent interactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := fmt.Sprintf("/api/memory/%s/interactions?limit=%d", args[0], limit)
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var interactions []struct {
			ID        string  `json:"id"`
			CreatedAt string  `json:"created_at"`
			Message   string  `json:"message"`
			Topic     string  `json:"topic"`
			Emotion   string  `json:"emotion"`
			Sentiment float64 `json:"sentiment"`
		}
		if err := decodeJSON(resp, &interactions); err != nil {
			return err
		}

		if len(interactions) == 0 {
			fmt.Println("No interactions found.")
			return nil
		}

		for _, ix := range interactions {
			message := ix.Message
			if len(message) > 80 {
				message = message[:80] + "..."
			}
			fmt.Printf("%s  %s  [%s/%s]  %s\n",
				colorize(colorCyan, ix.ID[:8]),
				ix.CreatedAt,
				ix.Topic,
				ix.Emotion,
				message,
			)
		}
		return nil
	},
}

func init() {
	memoryInteractionsCmd.Flags().Int("limit", 20, "maximum number of interactions to list")
	memoryCmd.AddCommand(memoryShowCmd)
	memoryCmd.AddCommand(memoryEraseCmd)
	memoryCmd.AddCommand(memoryInteractionsCmd)
	memoryEraseCmd.Flags().Bool("confirm", false, "confirm erasure")
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
