package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-sparta/sparta/codec"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var i32 int32 = -42
	u := codec.Encode[uint32](i32)
	back := codec.Decode[int32](u)
	assert.Equal(t, i32, back)
}

func TestEncodeUnsignedIdentity(t *testing.T) {
	assert.Equal(t, uint64(7), codec.Encode[uint64](uint64(7)))
}

func TestPointerKeyDistinctForDistinctAddresses(t *testing.T) {
	a, b := new(int), new(int)
	assert.NotEqual(t, codec.PointerKey(a), codec.PointerKey(b))
	assert.Equal(t, codec.PointerKey(a), codec.PointerKey(a))
}

func TestMustBeCompatiblePanicsOnSizeMismatch(t *testing.T) {
	assert.Panics(t, func() {
		codec.Encode[uint64](int32(1))
	})
}
