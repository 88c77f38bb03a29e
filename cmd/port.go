package cmd

import (
	"fmt"

	"chartserve/core/ports"

	"github.com/spf13/cobra"
)

var (
	portStart    int
	portAttempts int
)

// portCmd represents the port command
var portCmd = &cobra.Command{
	Use:   "port",
	Short: "Print the first free port",
	Long:  `Tries ports on 127.0.0.1 in ascending order from --start and prints the first one that can be bound.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := ports.FindFreePort(portStart, portAttempts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), port)
		return nil
	},
}

func init() {
	portCmd.Flags().IntVar(&portStart, "start", 8000, "first port to try")
	portCmd.Flags().IntVar(&portAttempts, "attempts", 10, "number of ports to try")
	RootCmd.AddCommand(portCmd)
}
