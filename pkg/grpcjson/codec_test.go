package grpcjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(Name)
	require.NotNil(t, c)
	assert.Equal(t, Name, c.Name())
}

func TestCodecEmptyPayload(t *testing.T) {
	var out struct{ ID string }
	require.NoError(t, Codec{}.Unmarshal(nil, &out))
	assert.Empty(t, out.ID)
}
