package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"clipdeck/internal/dashboard"
)

var (
	actAsEmail string
	treeJSON   bool
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print every project with its presentations and slides",
	RunE:  runTree,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&actAsEmail, "as", defaultAdminEmail, "Account the command acts as")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Print the tree as JSON")
}

func runTree(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	caller, err := s.actAs(ctx, actAsEmail)
	if err != nil {
		return err
	}

	tree, err := dashboard.LoadTree(ctx, s.services(), caller)
	if err != nil {
		return err
	}
	return writeTree(cmd.OutOrStdout(), tree, treeJSON)
}

func writeTree(w io.Writer, tree []dashboard.ProjectNode, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}

	if len(tree) == 0 {
		_, err := fmt.Fprintln(w, "(no projects)")
		return err
	}
	for _, p := range tree {
		fmt.Fprintf(w, "%s  %s\n", p.ID, p.Title)
		for _, pres := range p.Presentations {
			fmt.Fprintf(w, "  %s  %s (%d slides)\n", pres.ID, pres.Title, len(pres.Slides))
			for _, sl := range pres.Slides {
				fmt.Fprintf(w, "    #%d %s\n", sl.SlideOrder, indent(sl.Pretty, "       "))
			}
		}
	}
	return nil
}

func indent(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
