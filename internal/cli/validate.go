package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/techmarket/internal/models"
	"github.com/insightdelivered/techmarket/internal/validator"
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("cpf", "", "CPF, masked or not")
	validateCmd.Flags().String("nascimento", "", "Birth date (YYYY-MM-DD)")
	validateCmd.Flags().String("telefone", "", "Phone number, masked or not")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a registration form",
	Long: `Run the registration rules (CPF digit count, birth date not in the future,
phone with 10 or 11 digits) and print every violation. Exits with status 2
when the form is invalid.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	cpf, _ := cmd.Flags().GetString("cpf")
	birth, _ := cmd.Flags().GetString("nascimento")
	phone, _ := cmd.Flags().GetString("telefone")

	res := validator.New().Validate(models.RegistrationForm{CPF: cpf, BirthDate: birth, Phone: phone})
	out := cmd.OutOrStdout()
	if res.Valid() {
		fmt.Fprintln(out, "Cadastro validado!")
		return nil
	}

	for _, v := range res.Violations {
		fmt.Fprintf(out, "  - %s\n", v)
	}
	return fmt.Errorf("%w: %d problem(s)", errInvalid, len(res.Violations))
}
