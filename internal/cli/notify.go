package cli

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Report job table changes to the server",
}

var notifyChangedCmd = &cobra.Command{
	Use:   "changed <id> [id...]",
	Short: "Report edited or deleted job records",
	Long: `Report records whose features changed: their cached predictions are
invalidated and the edits count toward the retrain threshold.

Examples:
  paycast notify changed 7
  paycast notify changed 7 8 9`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNotifyChanged,
}

var changeCount int64

var notifyChangesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Report label-only edits",
	Long: `Report edits that do not affect predictions (pay corrections) but
still count toward the retrain threshold.

Examples:
  paycast notify changes
  paycast notify changes --count 5`,
	RunE: runNotifyChanges,
}

func init() {
	notifyChangesCmd.Flags().Int64Var(&changeCount, "count", 1, "number of changes to record")
	notifyCmd.AddCommand(notifyChangedCmd)
	notifyCmd.AddCommand(notifyChangesCmd)
	rootCmd.AddCommand(notifyCmd)
}

type notifyChangedRequest struct {
	IDs []int64 `json:"ids"`
}

type notifyChangesRequest struct {
	Count int64 `json:"count"`
}

func runNotifyChanged(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	client := NewClient()

	data, status, err := client.Post("/notify/changed", notifyChangedRequest{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", status, string(data))
	}

	if jsonOut {
		fmt.Println(string(data))
	} else {
		fmt.Printf("Invalidated %d prediction(s)\n", len(ids))
	}
	return nil
}

func runNotifyChanges(cmd *cobra.Command, args []string) error {
	client := NewClient()

	data, status, err := client.Post("/notify/changes", notifyChangesRequest{Count: changeCount})
	if err != nil {
		return fmt.Errorf("failed to notify: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", status, string(data))
	}

	if jsonOut {
		fmt.Println(string(data))
	} else {
		fmt.Printf("Recorded %d change(s)\n", changeCount)
	}
	return nil
}
