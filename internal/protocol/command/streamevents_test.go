package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func TestUnderflowOffsetVersionGating(t *testing.T) {
	// Scenario: the same logical Underflow{Channel: 3, Offset: 12345} is
	// written at v22 (below the offset's version floor) and at v23 (at the
	// floor); only the v23 wire form carries the offset back.
	u := Underflow{Channel: 3, Offset: 12345}

	var bufOld bytes.Buffer
	wOld := tagstruct.NewWriter(&bufOld, 22)
	require.NoError(t, EncodeUnderflow(wOld, 22, u))
	rOld := tagstruct.NewReader(&bufOld, 22)
	gotOld, err := DecodeUnderflow(rOld, 22)
	require.NoError(t, err)
	require.Equal(t, Underflow{Channel: 3, Offset: 0}, gotOld)

	var bufNew bytes.Buffer
	wNew := tagstruct.NewWriter(&bufNew, 23)
	require.NoError(t, EncodeUnderflow(wNew, 23, u))
	rNew := tagstruct.NewReader(&bufNew, 23)
	gotNew, err := DecodeUnderflow(rNew, 23)
	require.NoError(t, err)
	require.Equal(t, u, gotNew)
}
