package models

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestOrderNumberFor(t *testing.T) {
	id := uuid.MustParse("0198c2a4-5f6e-7d80-91a2-b3c4d5e6f708")

	number := OrderNumberFor(id)
	require.Equal(t, "OZME-D5E6F708", number)
}

func TestOrderNumberForIsStable(t *testing.T) {
	id := uuid.New()
	require.Equal(t, OrderNumberFor(id), OrderNumberFor(id))
	require.True(t, strings.HasPrefix(OrderNumberFor(id), "OZME-"))
	require.Len(t, OrderNumberFor(id), len("OZME-")+8)
}
