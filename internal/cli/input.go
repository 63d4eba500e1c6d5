package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// readInput returns the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		b, err := os.ReadFile(args[0])
		return string(b), err
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	return string(b), err
}

func write(cmd *cobra.Command, s string) error {
	_, err := io.WriteString(cmd.OutOrStdout(), s)
	return err
}
