package encoding

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRLE_RoundTrip(t *testing.T) {
	stone, log := uint16(1<<4), uint16(17<<4|2)
	in := []uint16{stone, stone, stone, 0, 0, log}
	for i := 0; i < 50; i++ {
		in = append(in, 0)
	}
	in = append(in, 0xFFFF, stone)

	out, err := DecodeRLE(EncodeRLE(in), len(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)

	empty, err := DecodeRLE(EncodeRLE(nil), 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRLE_Limit(t *testing.T) {
	enc := EncodeRLE(make([]uint16, 100))
	_, err := DecodeRLE(enc, 99)
	assert.ErrorContains(t, err, "exceeds 99")
}

func TestRLE_Malformed(t *testing.T) {
	_, err := DecodeRLE("not base64!", 10)
	assert.Error(t, err)

	zeroRun := base64.StdEncoding.EncodeToString([]byte{5, 0})
	_, err = DecodeRLE(zeroRun, 10)
	assert.ErrorContains(t, err, "empty run")

	truncated := base64.StdEncoding.EncodeToString([]byte{5})
	_, err = DecodeRLE(truncated, 10)
	assert.ErrorContains(t, err, "bad varint")
}
