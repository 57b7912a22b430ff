package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsage_Text(t *testing.T) {
	var buf bytes.Buffer
	err := writeUsage(&buf, map[string]int{"b": 4, "a": 1}, 5, false)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "a")
	assert.Contains(t, string(lines[0]), "1/5")
	assert.Contains(t, string(lines[1]), "4/5")
}

func TestWriteUsage_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUsage(&buf, nil, 5, false))
	assert.Equal(t, "no cached images\n", buf.String())
}

func TestWriteUsage_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeUsage(&buf, map[string]int{"x": 2}, 5, true))
	assert.JSONEq(t, `[{"id":"x","uses":2,"left":3}]`, buf.String())
}
