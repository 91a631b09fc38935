package cli

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get current server status",
	Long:  `Query the running paycast server for model and cache state.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := NewClient()

	data, status, err := client.Get("/status")
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	if status != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", status, string(data))
	}

	if jsonOut {
		fmt.Println(string(data))
		return nil
	}

	// Pretty print
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("=== Paycast Status ==="))

	if pred, ok := result["predictor"].(map[string]any); ok {
		fmt.Println(headerStyle.Render("\nPredictor:"))
		fmt.Printf("  Model fitted:   %v\n", pred["model_fitted"])
		fmt.Printf("  Model saved:    %v\n", pred["model_saved"])
		fmt.Printf("  Cached entries: %.0f\n", pred["cached_entries"])
		fmt.Printf("  Changes:        %.0f since training on %.0f rows\n",
			pred["change_counter"], pred["last_trained_row_count"])
		if lf, ok := pred["load_factor"].(float64); ok {
			line := fmt.Sprintf("  Load factor:    %.2f (retrain above %.2f)", lf, pred["stale_threshold"])
			if threshold, ok := pred["stale_threshold"].(float64); ok && lf > threshold {
				line = warnStyle.Render(line)
			}
			fmt.Println(line)
		}
	}

	if model, ok := result["model"].(map[string]any); ok {
		fmt.Println(headerStyle.Render("\nModel artifact:"))
		fmt.Printf("  Path:   %v\n", model["path"])
		if size, ok := model["size"].(float64); ok {
			fmt.Printf("  Size:   %.0f bytes\n", size)
		}
		if updated, ok := model["updated_at"].(string); ok {
			fmt.Printf("  Saved:  %s\n", updated)
		}
	}

	if proc, ok := result["process"].(map[string]any); ok {
		fmt.Println(headerStyle.Render("\nProcess:"))
		fmt.Printf("  PID:    %.0f\n", proc["pid"])
		if rss, ok := proc["rss_bytes"].(float64); ok {
			fmt.Printf("  RSS:    %.1f MB\n", rss/1024/1024)
		}
		if up, ok := proc["uptime_seconds"].(float64); ok {
			fmt.Printf("  Uptime: %.0fs\n", up)
		}
	}

	return nil
}
