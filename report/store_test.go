package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	apperrors "github.com/prosthetix/reports-platform/internal/errors"
	"github.com/prosthetix/reports-platform/report"
	"github.com/stretchr/testify/require"
)

var storeColumns = []string{
	"client_id", "date", "avg_joint_angle", "max_joint_angle",
	"min_joint_angle", "avg_pressure", "avg_battery", "most_common_activity",
}

func TestStore_FetchByScopeKey(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows newest first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		newest := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		oldest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := pgxmock.NewRows(storeColumns).
			AddRow("CLI004", newest, 11.0, 21.0, 6.0, 1.6, 88.0, "running").
			AddRow("CLI004", oldest, 10.0, 20.0, 5.0, 1.5, 90.0, "walking")
		mock.ExpectQuery("SELECT(.|\n)+FROM user_prosthesis_reports").
			WithArgs("CLI004").
			WillReturnRows(rows)

		store := report.NewStore(mock, time.Second)
		records, err := store.FetchByScopeKey(ctx, "CLI004")
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.Equal(t, newest, records[0].Date)
		require.Equal(t, "walking", records[1].Activity)
		require.Equal(t, 90.0, records[1].AvgBattery)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows is not an error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM user_prosthesis_reports").
			WithArgs("CLI999").
			WillReturnRows(pgxmock.NewRows(storeColumns))

		store := report.NewStore(mock, time.Second)
		records, err := store.FetchByScopeKey(ctx, "CLI999")
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("query fault maps to store unavailable", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT(.|\n)+FROM user_prosthesis_reports").
			WithArgs("CLI004").
			WillReturnError(errors.New("connection refused"))

		store := report.NewStore(mock, time.Second)
		_, err = store.FetchByScopeKey(ctx, "CLI004")
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	})
}
