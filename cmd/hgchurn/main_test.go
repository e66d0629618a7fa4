package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hgchurn version "+version+"\n", out)

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"`+version+`"}`, out)
}

func TestRun_Text(t *testing.T) {
	out, err := execute(t, "run", "--ops", "200", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "seed 7, policy reject: 200 ops OK")
	assert.Contains(t, out, "cascades:")
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, "run", "--ops", "300", "--policy", "merge", "--parallel-threshold", "1", "--json")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "merge", r.Policy)
	assert.Equal(t, 300, r.Stats.Ops)
}

func TestRun_BadPolicy(t *testing.T) {
	_, err := execute(t, "run", "--policy", "ignore")
	assert.ErrorContains(t, err, "unknown collision policy")
}
