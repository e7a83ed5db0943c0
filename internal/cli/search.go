package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jay5Bhatt/space-knowledge-engine/internal/memory"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search stored summaries in the memory store",
	Long: `Search performs a case-insensitive substring match over the summaries
in the JSON memory store and prints the matching records.

Example:
  ske search exoplanet
  ske search "water vapor" --memory data/memory.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&memoryPath, "memory", "", "path of the JSON memory store")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	store, err := memory.NewStore(cfg.Memory.Path)
	if err != nil {
		return fmt.Errorf("open memory store: %w", err)
	}

	results := store.QuerySimilar(args[0])
	if len(results) == 0 {
		fmt.Println("No matching records")
		return nil
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
