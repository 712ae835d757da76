package cli

import (
	"encoding/json"
	"fmt"

	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/spf13/cobra"
)

// DeriveIDsCmd prints the ids a pool name or a beneficiary and pool map to.
// No config or db is needed:
// ./vesting-engine derive-ids pool acme
// ./vesting-engine derive-ids grant alice <poolId>
func DeriveIDsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive-ids",
		Short: "Print derived pool, treasury and grant ids",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "pool [name]",
		Short: "Print the pool and treasury ids of a pool name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := derive.ValidatePoolName(name); err != nil {
				return err
			}
			return printJSON(cmd, map[string]derive.Address{
				"pool":     derive.PoolAddress(name),
				"treasury": derive.TreasuryAddress(name),
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "grant [beneficiary] [poolId]",
		Short: "Print the grant id of a beneficiary in a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, map[string]derive.Address{
				"grant": derive.GrantAddress(args[0], args[1]),
			})
		},
	})

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
