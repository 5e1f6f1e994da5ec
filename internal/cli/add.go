package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/aimemo"
	"github.com/rcliao/aimemo/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Store a memory",
		Long:  "Store a memory with write-time entity extraction and categorization. Content can be a positional arg or piped via stdin.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("ns", "n", "default", "Namespace")
	cmd.Flags().StringP("tags", "t", "", "Comma-separated tags")
	cmd.Flags().String("category", "", "Category: fact, preference, skill, rule, context, unknown (default: auto)")
	cmd.Flags().String("meta", "", "JSON metadata object")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")
	tagsStr, _ := cmd.Flags().GetString("tags")
	categoryStr, _ := cmd.Flags().GetString("category")
	metaStr, _ := cmd.Flags().GetString("meta")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var category model.Category
	if categoryStr != "" {
		var err error
		category, err = model.ParseCategory(categoryStr)
		if err != nil {
			exitErr("add", err)
		}
	}

	var meta map[string]any
	if metaStr != "" {
		if err := json.Unmarshal([]byte(metaStr), &meta); err != nil {
			exitErr("parse meta", err)
		}
	}

	var tags []string
	if tagsStr != "" {
		for _, t := range strings.Split(tagsStr, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				tags = append(tags, t)
			}
		}
	}

	m, s, err := openMemo(ns)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	id, err := m.AddMemory(cmd.Context(), content, aimemo.AddOptions{
		Metadata: meta,
		Tags:     tags,
		Category: category,
	})
	if err != nil {
		exitErr("add", err)
	}

	fmt.Printf(`{"ok":true,"id":%q,"namespace":%q}`+"\n", id, ns)
}
