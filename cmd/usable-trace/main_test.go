// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/usable/internal/plan"
)

func TestRunNested(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-plan", "testdata/nested.yaml", "-repeat", "2"}, &out, io.Discard)
	require.NoError(t, err)

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Enter: outer\t"))
	assert.Equal(t, 2, strings.Count(text, "Leave: inner"))
	assert.Contains(t, text, "run 1: outer/inner/value")
	assert.Contains(t, text, "run 2: outer/inner/value")
	assert.Less(t, strings.Index(text, "Leave: inner"), strings.LastIndex(text, "Leave: outer\t"))
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-plan", "testdata/nested.yaml", "-json"}, &out, io.Discard))

	var messages []string
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "nested", entry["plan"])
		messages = append(messages, entry["msg"].(string))
	}
	assert.Equal(t, []string{
		"Enter: outer",
		"    Enter: inner",
		"        Value: outer/inner/value",
		"    Leave: inner",
		"Leave: outer",
	}, messages)
}

func TestRunFailingPlan(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-plan", "testdata/failing.yaml"}, &out, io.Discard)
	require.ErrorIs(t, err, plan.ErrBodyFailed)
	assert.Contains(t, out.String(), "Leave: inner")
	assert.Contains(t, out.String(), "run failed")
}

func TestRunArguments(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run(nil, &out, io.Discard))
	require.Error(t, run([]string{"-plan", "testdata/nested.yaml", "-repeat", "0"}, &out, io.Discard))
	require.Error(t, run([]string{"-plan", "testdata/missing.yaml"}, &out, io.Discard))
	require.Error(t, run([]string{"-unknown"}, &out, io.Discard))
}

func TestRunFlagOutputGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-unknown"}, &out, &errOut)
	require.Error(t, err)
	assert.False(t, errors.Is(err, flag.ErrHelp))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "-unknown")
}

func TestRunHelp(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-h"}, &out, &errOut)
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "-plan")
}
