package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all memories in a namespace",
		Long:  "Delete every memory in the given namespace. A namespace with no memories is a no-op.",
		Run:   runClear,
	}

	cmd.Flags().StringP("ns", "n", "", "Namespace (required)")
	cmd.MarkFlagRequired("ns")

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.Clear(cmd.Context(), ns); err != nil {
		exitErr("clear", err)
	}

	fmt.Printf(`{"ok":true,"namespace":%q}`+"\n", ns)
}
