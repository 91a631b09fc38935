package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the trained model and all cached predictions",
	Long: `Discard the trained model, the prediction cache and the persisted
training state. Use after wiping the job table; the next prediction request
trains from scratch.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		fmt.Print(warnStyle.Render("This discards the trained model and all cached predictions.") + " Continue? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted")
			return nil
		}
	}

	client := NewClient()

	data, status, err := client.Post("/reset", nil)
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", status, string(data))
	}

	if jsonOut {
		fmt.Println(string(data))
	} else {
		fmt.Println("Prediction state reset")
	}
	return nil
}
