package kernel_test

import (
	"testing"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVolume(t *testing.T) {
	t.Run("should create valid quantities", func(t *testing.T) {
		v, err := kernel.NewVolume(60000)

		require.NoError(t, err)
		assert.Equal(t, int64(60000), v.Hundredths())
		assert.False(t, v.IsZero())
	})

	t.Run("zero is a valid sold-out quantity", func(t *testing.T) {
		v, err := kernel.NewVolume(0)

		require.NoError(t, err)
		assert.True(t, v.IsZero())
	})

	t.Run("should reject negative quantities", func(t *testing.T) {
		_, err := kernel.NewVolume(-1)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestVolume_Arithmetic(t *testing.T) {
	total, _ := kernel.NewVolume(100000)  // 1000.00 kg
	requested, _ := kernel.NewVolume(60000) // 600.00 kg

	t.Run("Exceeds", func(t *testing.T) {
		assert.False(t, requested.Exceeds(total))
		assert.True(t, total.Exceeds(requested))
		assert.False(t, total.Exceeds(total))
	})

	t.Run("Sub and Add are inverse", func(t *testing.T) {
		remaining, err := total.Sub(requested)

		require.NoError(t, err)
		assert.Equal(t, int64(40000), remaining.Hundredths())
		assert.Equal(t, total, remaining.Add(requested))
	})

	t.Run("Sub refuses to go negative", func(t *testing.T) {
		_, err := requested.Sub(total)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestVolume_Price(t *testing.T) {
	t.Run("reference scenario: 600 kg at 48 per kg", func(t *testing.T) {
		vol, _ := kernel.NewVolume(60000)
		price, _ := kernel.NewMoney(48)

		assert.Equal(t, int64(28800), vol.Price(price).Cents())
	})
}

func TestVolume_String(t *testing.T) {
	v, _ := kernel.NewVolume(60000)
	assert.Equal(t, "600.00", v.String())

	v, _ = kernel.NewVolume(1205)
	assert.Equal(t, "12.05", v.String())
}
