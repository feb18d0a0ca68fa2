package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/techmarket/internal/mask"
)

func init() {
	rootCmd.AddCommand(maskCmd)
}

var maskCmd = &cobra.Command{
	Use:   "mask FIELD VALUE...",
	Short: "Mask a CPF or phone number",
	Long: `Normalize and mask a raw field value the way the registration page does
on every keystroke. FIELD is "cpf" or "telefone"; remaining arguments are
joined with spaces.`,
	Example: `  techmarket mask cpf 12345678900
  techmarket mask telefone "11 98765 4321"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMask,
}

func runMask(cmd *cobra.Command, args []string) error {
	field, err := mask.ParseField(args[0])
	if err != nil {
		return err
	}
	masked, err := mask.Format(field, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), masked)
	return nil
}
