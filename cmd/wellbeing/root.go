package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "WELLBEING"

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "wellbeing",
		Short: "Wellbeing scoring and weekly report tool",
		Long: `wellbeing computes composite wellbeing scores and weekly reports offline.

Use "report" to summarise a file of stored composite rows and "score" to see how a single
check-in would be scored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("format", "text", "Output format (text|json)")
	root.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	_ = v.BindPFlag("format", root.PersistentFlags().Lookup("format"))
	_ = v.BindPFlag("no-color", root.PersistentFlags().Lookup("no-color"))

	root.AddCommand(newReportCmd(v), newScoreCmd(v))
	return root
}

func outputFormat(v *viper.Viper) (string, error) {
	format := strings.ToLower(strings.TrimSpace(v.GetString("format")))
	switch format {
	case "", "text":
		return "text", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text or json)", format)
	}
}
