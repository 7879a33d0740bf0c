package iojson

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]int{"a": 1}))
	require.NoError(t, WriteLine(&buf, []string{}))

	assert.Equal(t, "{\"a\":1}\n[]\n", buf.String())
}

func TestWriteLine_marshalError(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLine(&buf, make(chan int))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"k": "v"}))
	assert.JSONEq(t, `{"k":"v"}`, out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, make(chan int)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "error marshaling in iojson.Write")
}

func TestWriteErrorWith(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteErrorWith(&buf, "bad line", map[string]any{"line": 3}))
	assert.JSONEq(t, `{"message":"bad line","data":{"line":3}}`, buf.String())
}

func TestWriteErrorWith_fallback(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteErrorWith(&buf, "oops", map[string]any{"ch": make(chan int)}))
	assert.Contains(t, buf.String(), `"message":"oops"`)
	assert.Contains(t, buf.String(), "json_error")
}

func TestFileReader_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0o644))

	fr := &FileReader[struct {
		Name string `json:"name"`
	}]{fileFlagValue: path}

	got, err := fr.Read()
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}

func TestFileReader_missingFile(t *testing.T) {
	fr := &FileReader[map[string]any]{fileFlagValue: filepath.Join(t.TempDir(), "nope.json")}

	_, err := fr.Read()
	require.ErrorContains(t, err, "open file")
}
