package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/aimemo/internal/model"
	"github.com/rcliao/aimemo/internal/retrieval"
)

func init() {
	cmd := &cobra.Command{
		Use:   "context [query]",
		Short: "Retrieve the most relevant memories for a query",
		Long:  "Search and re-rank memories by a blend of search order and recency, then print the formatted context block.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runContext,
	}

	cmd.Flags().StringP("ns", "n", "default", "Namespace")
	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().IntP("limit", "l", retrieval.DefaultLimit, "Max memories")
	cmd.Flags().Float64P("recency-weight", "w", retrieval.DefaultRecencyWeight, "Recency blend weight (0-1)")
	cmd.Flags().Bool("json", false, "Print ranked memories as JSON instead of the context block")

	RootCmd.AddCommand(cmd)
}

func runContext(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")
	categoryStr, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")
	weight, _ := cmd.Flags().GetFloat64("recency-weight")
	asJSON, _ := cmd.Flags().GetBool("json")
	query := strings.Join(args, " ")

	var category model.Category
	if categoryStr != "" {
		var err error
		category, err = model.ParseCategory(categoryStr)
		if err != nil {
			exitErr("context", err)
		}
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	memories, err := retrieval.New(s).RelevantContext(cmd.Context(), retrieval.ContextParams{
		Namespace:     ns,
		Query:         query,
		Category:      category,
		Limit:         limit,
		RecencyWeight: weight,
	})
	if err != nil {
		exitErr("context", err)
	}

	if asJSON {
		if len(memories) == 0 {
			fmt.Println("[]")
			return
		}
		b, _ := json.MarshalIndent(memories, "", "  ")
		fmt.Println(string(b))
		return
	}

	fmt.Println(retrieval.FormatContext(memories))
}
