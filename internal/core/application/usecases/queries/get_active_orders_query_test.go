package queries_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetActiveOrdersQuery_Success(t *testing.T) {
	query := queries.NewGetActiveOrdersQuery()

	assert.NotZero(t, query)
	require.NoError(t, query.Validate())
}

func TestGetActiveOrdersQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetActiveOrdersQuery // zero value, not constructed via constructor

	err := query.Validate()

	require.Error(t, err)
	require.ErrorIs(t, err, queries.ErrGetActiveOrdersQueryIsNotConstructed)
}
