package pluginpb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protox-go/protox/container"
	"github.com/protox-go/protox/pluginpb"
)

func TestCodeGeneratorRequestRoundTrip(t *testing.T) {
	req := pluginpb.CodeGeneratorRequestType.New()
	require.NoError(t, req.Set("parameter", "base-package=example.com/out"))
	ftg, err := req.Get("file_to_generate")
	require.NoError(t, err)
	require.NoError(t, ftg.(*container.List).Extend([]interface{}{"a.proto", "b.proto"}))

	bs, err := req.ToBytes()
	require.NoError(t, err)

	req2 := pluginpb.CodeGeneratorRequestType.New()
	require.NoError(t, req2.FromBytes(bs, true))
	param, err := req2.Get("parameter")
	require.NoError(t, err)
	assert.Equal(t, "base-package=example.com/out", param)
	files, err := req2.Get("file_to_generate")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a.proto", "b.proto"}, files.(*container.List).Slice())
}

func TestCodeGeneratorResponseWithFiles(t *testing.T) {
	resp := pluginpb.CodeGeneratorResponseType.New()
	fv, err := resp.Get("file")
	require.NoError(t, err)
	require.NoError(t, fv.(*container.List).Append(pluginpb.NewFile("out/a.go", "package out\n")))

	bs, err := resp.ToBytes()
	require.NoError(t, err)

	resp2 := pluginpb.CodeGeneratorResponseType.New()
	require.NoError(t, resp2.FromBytes(bs, true))
	fv2, err := resp2.Get("file")
	require.NoError(t, err)
	assert.Equal(t, 1, fv2.(*container.List).Len())
}

func TestCodeGeneratorResponseErrorOnly(t *testing.T) {
	resp := pluginpb.CodeGeneratorResponseType.New()
	require.NoError(t, resp.Set("error", "unsupported syntax"))
	bs, err := resp.ToBytes()
	require.NoError(t, err)

	resp2 := pluginpb.CodeGeneratorResponseType.New()
	require.NoError(t, resp2.FromBytes(bs, true))
	errMsg, err := resp2.Get("error")
	require.NoError(t, err)
	assert.Equal(t, "unsupported syntax", errMsg)
}
