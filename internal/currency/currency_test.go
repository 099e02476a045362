package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSymbol(t *testing.T) {
	require.Equal(t, "$", Symbol("USD"))
	require.Equal(t, "€", Symbol("eur"))
	require.Equal(t, "₹", Symbol(" inr "))
}

func TestSymbolUnknownFallsBackToCode(t *testing.T) {
	require.Equal(t, "XYZ", Symbol("xyz"))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "$90.00", Format(decimal.NewFromInt(90), "USD"))
	require.Equal(t, "€10.50", Format(decimal.RequireFromString("10.5"), "EUR"))
	require.Equal(t, "XYZ0.00", Format(decimal.Zero, "xyz"))
}
