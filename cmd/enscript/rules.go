package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"enscript/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List diagnostic rules in execution order",
	Long:  `List every registered diagnostic rule with its execution order, priority, dependencies and configuration`,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfoJSON struct {
	ID       string   `json:"id"`
	Priority int      `json:"priority"`
	After    []string `json:"after,omitempty"`
	Enabled  bool     `json:"enabled"`
	Severity string   `json:"severity,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	snapshot := rules.NewDefaultRegistry().Export()

	infos := make([]ruleInfoJSON, 0, len(snapshot))
	for _, r := range snapshot {
		info := ruleInfoJSON{
			ID:       r.ID,
			Priority: r.Priority,
			After:    r.After,
			Enabled:  r.Enabled,
		}
		if r.Severity != nil {
			info.Severity = r.Severity.String()
		}
		infos = append(infos, info)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "pretty":
		renderRulesPretty(cmd, infos)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderRulesPretty(cmd *cobra.Command, infos []ruleInfoJSON) {
	out := cmd.OutOrStdout()
	colorOn, _ := useColor(cmd)
	idStyle := color.New(color.FgCyan, color.Bold)

	for i, info := range infos {
		id := info.ID
		if colorOn {
			id = idStyle.Sprint(id)
		}
		fmt.Fprintf(out, "%2d. %s (priority %d)\n", i+1, id, info.Priority)
		if len(info.After) > 0 {
			fmt.Fprintf(out, "    after: %s\n", strings.Join(info.After, ", "))
		}
		if !info.Enabled {
			fmt.Fprintln(out, "    disabled")
		}
		if info.Severity != "" {
			fmt.Fprintf(out, "    severity: %s\n", info.Severity)
		}
	}
}
