// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/usable"
	"code.hybscloud.com/usable/internal/plan"
	"code.hybscloud.com/usable/trace"
)

func TestLoad(t *testing.T) {
	p, err := plan.Load("testdata/nested.yaml")
	require.NoError(t, err)
	assert.Equal(t, "nested", p.Name)
	assert.Equal(t, "value", p.Result)
	assert.Equal(t, []plan.Step{
		{Operation: "outer", Kind: plan.KindCreate},
		{Operation: "inner", Kind: plan.KindDirect},
	}, p.Steps)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := plan.Load("testdata/missing.yaml")
	require.Error(t, err)
}

func TestParseDefaultsKind(t *testing.T) {
	p, err := plan.Parse([]byte("name: n\nsteps:\n  - operation: a\n"))
	require.NoError(t, err)
	assert.Equal(t, plan.KindUsing, p.Steps[0].Kind)
}

func TestParseInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"malformed":    "steps: [",
		"no steps":     "name: empty\n",
		"no operation": "steps:\n  - kind: create\n",
		"unknown kind": "steps:\n  - operation: a\n    kind: pooled\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := plan.Parse([]byte(doc))
			require.ErrorIs(t, err, plan.ErrInvalidPlan)
		})
	}
}

func TestBuildIsLazy(t *testing.T) {
	p, err := plan.Load("testdata/nested.yaml")
	require.NoError(t, err)

	l := trace.NewListener()
	_ = p.Build(l.Tracer())
	assert.Empty(t, l.Lines())
}

func TestRunAllKinds(t *testing.T) {
	p := &plan.Plan{
		Name:   "kinds",
		Result: "value",
		Steps: []plan.Step{
			{Operation: "a", Kind: plan.KindUsing},
			{Operation: "b", Kind: plan.KindCreate},
			{Operation: "c", Kind: plan.KindOnce},
			{Operation: "d", Kind: plan.KindDirect},
			{Operation: "e", Kind: plan.KindValue},
		},
	}
	require.NoError(t, p.Validate())

	l := trace.NewListener()
	report, err := p.Run(l.Tracer())
	require.NoError(t, err)
	assert.Equal(t, "a/b/c/d/e/value", report.Value)
	assert.GreaterOrEqual(t, report.Elapsed.Nanoseconds(), int64(0))
	assert.Equal(t, []string{
		"Enter: a",
		"    Enter: b",
		"        Enter: c",
		"            Enter: d",
		"                Value: a/b/c/d/e/value",
		"            Leave: d",
		"        Leave: c",
		"    Leave: b",
		"Leave: a",
	}, l.Lines())
}

func TestExecuteRepeatedly(t *testing.T) {
	p, err := plan.Load("testdata/nested.yaml")
	require.NoError(t, err)

	l := trace.NewListener()
	composed := p.Build(l.Tracer())
	for range 2 {
		l.Reset()
		report, err := plan.Execute(p, composed, l.Tracer())
		require.NoError(t, err)
		assert.Equal(t, "outer/inner/value", report.Value)
		assert.Equal(t, []string{
			"Enter: outer",
			"    Enter: inner",
			"        Value: outer/inner/value",
			"    Leave: inner",
			"Leave: outer",
		}, l.Lines())
	}
}

func TestRunBodyFailure(t *testing.T) {
	p := &plan.Plan{
		Fail:  "disk full",
		Steps: []plan.Step{{Operation: "outer"}, {Operation: "inner", Kind: plan.KindDirect}},
	}
	require.NoError(t, p.Validate())

	l := trace.NewListener()
	_, err := p.Run(l.Tracer())
	require.ErrorIs(t, err, plan.ErrBodyFailed)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{
		"Enter: outer",
		"    Enter: inner",
		"    Leave: inner",
		"Leave: outer",
	}, l.Lines())
}

func TestRunStepFailure(t *testing.T) {
	for _, kind := range []plan.Kind{plan.KindUsing, plan.KindCreate, plan.KindOnce, plan.KindDirect, plan.KindValue} {
		t.Run(string(kind), func(t *testing.T) {
			p := &plan.Plan{Steps: []plan.Step{
				{Operation: "outer", Kind: plan.KindCreate},
				{Operation: "broken", Kind: kind, Fail: true},
				{Operation: "never"},
			}}
			require.NoError(t, p.Validate())

			l := trace.NewListener()
			_, err := p.Run(l.Tracer())
			require.ErrorIs(t, err, plan.ErrStepFailed)
			assert.Contains(t, err.Error(), "broken")
			assert.Equal(t, []string{"Enter: outer", "Leave: outer"}, l.Lines())
		})
	}
}

func TestBuildComposesWithOtherScopes(t *testing.T) {
	p := &plan.Plan{Steps: []plan.Step{{Operation: "a"}}}
	require.NoError(t, p.Validate())

	l := trace.NewListener()
	u := usable.Map(p.Build(l.Tracer()), func(path string) int { return len(path) })
	n, err := usable.Value(u)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
