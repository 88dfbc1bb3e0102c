package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTuple(t *testing.T) {
	t.Run("nil values", func(t *testing.T) {
		tuple := Pack(1, nil, "a")

		assert.Equal(t, 3, tuple.Len())
		assert.Nil(t, tuple.Second())
		assert.Equal(t, "a", tuple.Last())
		assert.Nil(t, tuple.At(7))

		if diff := cmp.Diff([]any{1, nil, "a"}, tuple.Values()); diff != "" {
			t.Errorf("Values() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("equality", func(t *testing.T) {
		assert.True(t, Pack(1, "x").Equal(Pack(1, "x")))
		assert.False(t, Pack(1, "x").Equal(Pack(1, "y")))
		assert.False(t, Pack(nil).Equal(Pack()))

		// cmp picks up the Equal method
		assert.True(t, cmp.Equal(Pack(2, nil), Pack(2, nil)))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "(1, nil, a)", Pack(1, nil, "a").String())
		assert.Equal(t, "()", Pack().String())
	})

	t.Run("values are copied", func(t *testing.T) {
		tuple := Pack(1, 2)
		values := tuple.Values()
		values[0] = 9

		assert.Equal(t, 1, tuple.First())
	})
}
