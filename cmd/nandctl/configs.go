package main

import (
	"github.com/hmelgaard/nandkit/nand/layout"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigsCmd())
}

func newConfigsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "List the built-in NAND page configurations",
		Long: `The configs command lists every page geometry in the built-in catalog,
with its page size, ECC scheme and byte areas.

Example:
  nandctl configs
  nandctl configs --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigs()
		},
	}
}

func runConfigs() error {
	names := layout.Names()

	if jsonOut {
		type jsonConfig struct {
			Name     string `json:"name"`
			ECCType  string `json:"ecc_type"`
			PageSize int    `json:"page_size"`
			DataSize int    `json:"data_size"`
			ECCSize  int    `json:"ecc_size"`
			BBMSize  int    `json:"bbm_size"`
			PadSize  int    `json:"padding_size"`
		}
		out := make([]jsonConfig, 0, len(names))
		for _, n := range names {
			cfg, _ := layout.Lookup(n)
			out = append(out, jsonConfig{
				Name:     cfg.Name,
				ECCType:  cfg.ECCType.String(),
				PageSize: cfg.PageSize(),
				DataSize: cfg.DataSize,
				ECCSize:  cfg.ECCSize,
				BBMSize:  cfg.BBMSize,
				PadSize:  cfg.PaddingSize,
			})
		}
		return printJSON(out)
	}

	printInfo("%-20s %-8s %10s %6s %5s %5s %9s\n",
		"NAME", "ECC", "PAGE SIZE", "DATA", "ECC", "BBM", "PADDING")
	for _, n := range names {
		cfg, _ := layout.Lookup(n)
		printInfo("%-20s %-8s %10d %6d %5d %5d %9d\n",
			cfg.Name, cfg.ECCType, cfg.PageSize(),
			cfg.DataSize, cfg.ECCSize, cfg.BBMSize, cfg.PaddingSize)
	}
	return nil
}
