package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict <id> [id...]",
	Short: "Get predicted pay for job records",
	Long: `Request predicted pay values for the given job record ids.

Examples:
  paycast predict 1 2 3
  paycast predict 42 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

type predictRequest struct {
	IDs []int64 `json:"ids"`
}

type predictResponse struct {
	Predictions map[int64]float64 `json:"predictions"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", arg, err)
		}
		ids = append(ids, id)
	}

	client := NewClient()

	data, status, err := client.Post("/predict", predictRequest{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to predict: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("server returned status %d: %s", status, string(data))
	}

	if jsonOut {
		fmt.Println(string(data))
		return nil
	}

	var resp predictResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	sorted := make([]int64, 0, len(resp.Predictions))
	for id := range resp.Predictions {
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(headerStyle).
		Headers("ID", "PREDICTED PAY")
	for _, id := range sorted {
		tbl.Row(strconv.FormatInt(id, 10), fmt.Sprintf("%.2f", resp.Predictions[id]))
	}

	fmt.Println(tbl.Render())
	return nil
}
