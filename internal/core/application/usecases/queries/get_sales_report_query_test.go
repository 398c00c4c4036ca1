package queries_test

import (
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetSalesReportQuery_Success(t *testing.T) {
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetSalesReportQuery(from, to)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, from, query.From())
	assert.Equal(t, to, query.To())
}

func TestNewGetSalesReportQuery_ZeroBounds(t *testing.T) {
	now := time.Now().UTC()

	_, err := queries.NewGetSalesReportQuery(time.Time{}, now)
	require.Error(t, err)

	_, err = queries.NewGetSalesReportQuery(now, time.Time{})
	require.Error(t, err)
}

func TestNewGetSalesReportQuery_InvertedRange(t *testing.T) {
	from := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetSalesReportQuery(from, to)

	require.Error(t, err)
}

func TestGetSalesReportQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetSalesReportQuery // zero value, not constructed via constructor

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetSalesReportQueryIsNotConstructed)
}
