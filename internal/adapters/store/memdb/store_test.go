package memdb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/memdb"
	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/storetest"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Subject {
		s, err := memdb.New("test")
		require.NoError(t, err)
		return storetest.Subject{Store: s, Close: s.Close}
	})
}

func TestStore_HealthCheck(t *testing.T) {
	t.Parallel()

	s, err := memdb.New("")
	require.NoError(t, err)
	require.Equal(t, "store:memdb", s.Name())
	require.NoError(t, s.HealthCheck(context.Background()))

	require.NoError(t, s.Close())
	require.ErrorIs(t, s.HealthCheck(context.Background()), domain.ErrUnavailable)
}

func TestStore_ReadOnlyTxnRejectsWrites(t *testing.T) {
	t.Parallel()

	s, err := memdb.New("ro")
	require.NoError(t, err)

	tx, err := s.Begin(context.Background(), false)
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck // read txn

	require.Error(t, tx.Put(context.Background(), ports.Record{Kind: "k", ID: "1"}))
	_, err = tx.Delete(context.Background(), ports.AllOf("k"))
	require.Error(t, err)
}
