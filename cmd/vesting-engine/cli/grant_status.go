package cli

import (
	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/services"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/spf13/cobra"
)

// GrantStatusCmd prints the state of a grant without claiming:
// ./vesting-engine grant-status <grantId> --config config.yml
func GrantStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant-status [grantId]",
		Short: "Print vested and claimable amounts of a grant",
		Args:  cobra.ExactArgs(1),
		RunE:  grantStatus,
	}

	return cmd
}

func grantStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	dbClient, closeDb, err := newDbClient(ctx, &cfg.Db)
	if err != nil {
		return err
	}
	defer closeDb()

	srv := services.NewService(cfg, dbClient, nil, nil, clock.NewDefaultClock())
	status, statusErr := srv.GrantStatus(ctx, args[0])
	if statusErr != nil {
		return statusErr
	}

	return printJSON(cmd, map[string]any{
		"grant_id":        status.Grant.ID,
		"pool_id":         status.Grant.PoolID,
		"beneficiary":     status.Grant.Beneficiary,
		"state":           status.State,
		"total_amount":    status.Grant.TotalAmount,
		"total_withdrawn": status.Grant.TotalWithdrawn,
		"vested":          status.Vested,
		"claimable":       status.Claimable,
		"now":             status.Now,
	})
}
