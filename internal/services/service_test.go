package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/babylonlabs-io/vesting-engine/internal/clients/transferclient"
	"github.com/babylonlabs-io/vesting-engine/internal/config"
	"github.com/babylonlabs-io/vesting-engine/internal/db/memdb"
	"github.com/babylonlabs-io/vesting-engine/internal/db/model"
	"github.com/babylonlabs-io/vesting-engine/internal/derive"
	"github.com/babylonlabs-io/vesting-engine/internal/queue"
	"github.com/babylonlabs-io/vesting-engine/tests/mocks"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testOwner       = "owner"
	testBeneficiary = "alice"
	testPoolName    = "acme"
	testAsset       = "USDC"
)

type testEnv struct {
	svc      *Service
	db       *memdb.Database
	clock    *clock.TestClock
	transfer *mocks.TransferInterface

	mu        sync.Mutex
	transfers []transferclient.TransferRequest
}

func testConfig() *config.Config {
	return &config.Config{
		Engine: config.EngineConfig{
			LockTTL:           time.Minute,
			LockMaxAttempts:   3,
			LockRetryInterval: time.Millisecond,
		},
		Transfer: config.TransferConfig{
			Timeout: 10 * time.Second,
		},
		Poller: config.PollerConfig{
			StatsPollingInterval: time.Hour,
		},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		db:       memdb.New(),
		clock:    clock.NewTestClock(time.Unix(0, 0)),
		transfer: mocks.NewTransferInterface(t),
	}
	env.svc = NewService(testConfig(), env.db, env.transfer, queue.NoopPublisher{}, env.clock)
	return env
}

// confirmTransfers makes the gateway confirm every transfer and records it
func (e *testEnv) confirmTransfers() {
	e.transfer.On("Transfer", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, req transferclient.TransferRequest) (*transferclient.TransferReceipt, error) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.transfers = append(e.transfers, req)
			return &transferclient.TransferReceipt{
				TransferID: req.IdempotencyKey,
				Status:     transferclient.StatusConfirmed,
			}, nil
		},
	)
}

func (e *testEnv) failTransfers() *mock.Call {
	return e.transfer.On("Transfer", mock.Anything, mock.Anything).
		Return(nil, errors.New("gateway unavailable"))
}

func (e *testEnv) setTime(t *testing.T, unix int64) {
	t.Helper()
	e.clock.SetTime(time.Unix(unix, 0))
}

func (e *testEnv) transferred() []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	amounts := make([]uint64, 0, len(e.transfers))
	for _, req := range e.transfers {
		amounts = append(amounts, req.Amount)
	}
	return amounts
}

// createExampleGrant creates the 1000 units grant vesting over [0, 100]
// with a cliff at 10
func (e *testEnv) createExampleGrant(t *testing.T) (*model.PoolDocument, *model.GrantDocument) {
	t.Helper()
	ctx := t.Context()

	pool, err := e.svc.CreatePool(ctx, testOwner, testAsset, testPoolName, 6)
	require.Nil(t, err)

	grant, err := e.svc.CreateGrant(ctx, testOwner, CreateGrantRequest{
		PoolID:      pool.ID,
		Beneficiary: testBeneficiary,
		StartTime:   0,
		EndTime:     100,
		CliffTime:   10,
		TotalAmount: 1000,
	})
	require.Nil(t, err)
	require.Equal(t, derive.GrantID(testBeneficiary, pool.ID), grant.ID)

	return pool, grant
}
