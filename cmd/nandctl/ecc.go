package main

import (
	"fmt"
	"os"

	nandecc "github.com/hmelgaard/nandkit/nand/ecc"
	"github.com/hmelgaard/nandkit/nand/ecc/bch"
	"github.com/hmelgaard/nandkit/nand/ecc/hamming"
	"github.com/spf13/cobra"
)

var (
	eccScheme string
	eccSize   int
)

func init() {
	cmd := newECCCmd()
	cmd.Flags().StringVarP(&eccScheme, "scheme", "s", "hamming", "ECC scheme (hamming, bch)")
	cmd.Flags().IntVarP(&eccSize, "size", "n", 3, "ECC size in bytes")
	rootCmd.AddCommand(cmd)
}

func newECCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ecc <block>",
		Short: "Compute the ECC bytes for a raw data block",
		Long: `The ecc command reads one data block from a file and prints the ECC
bytes the selected codec computes for it. Useful for checking what a
page's spare area should contain.

Example:
  nandctl ecc block.bin --scheme hamming --size 3
  nandctl ecc block.bin --scheme bch --size 13 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runECC(args[0])
		},
	}
}

func runECC(blockPath string) error {
	data, err := os.ReadFile(blockPath)
	if err != nil {
		return err
	}

	var codec nandecc.Codec
	switch eccScheme {
	case "hamming":
		codec = hamming.Codec{}
	case "bch":
		codec = bch.Codec{}
	default:
		return fmt.Errorf("unknown ECC scheme: %s (must be hamming or bch)", eccScheme)
	}

	out, err := codec.Encode(data, eccSize)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"scheme": eccScheme,
			"size":   eccSize,
			"ecc":    fmt.Sprintf("%x", out),
		})
	}
	printInfo("%x\n", out)
	return nil
}
