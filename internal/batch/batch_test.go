package batch

import (
	"context"
	"fmt"
	"testing"

	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roles = graph.Roles{Source: "s", Target: "t", Weight: "w", Interval: "y"}

func TestSummarizeKeepsInputOrder(t *testing.T) {
	inputs := make([]Input, 0, 20)
	for i := 0; i < 20; i++ {
		text := "s,t,w,y\n"
		for j := 0; j <= i; j++ {
			text += fmt.Sprintf("n%d,n%d,1,%d\n", j, j+1, 2000+j)
		}
		inputs = append(inputs, Input{Name: fmt.Sprintf("in%d", i), Text: text})
	}

	opts := DefaultOptions()
	opts.Limit = 3
	sums, err := Summarize(context.Background(), inputs, roles, opts)
	require.NoError(t, err)
	require.Len(t, sums, 20)

	for i, s := range sums {
		assert.Equal(t, fmt.Sprintf("in%d", i), s.Name)
		assert.Equal(t, i+1, s.Edges)
		assert.Equal(t, i+2, s.Nodes)
		require.NotNil(t, s.Range)
		assert.Equal(t, graph.TimeRange{Min: 2000, Max: 2000 + i}, *s.Range)
	}
}

func TestSummarizeFirstErrorFails(t *testing.T) {
	inputs := []Input{
		{Name: "good", Text: "s,t,w,y\na,b,1,1\n"},
		{Name: "bad", Text: "x,z\n1,2\n"},
	}

	_, err := Summarize(context.Background(), inputs, roles, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrMissingRole)
	assert.Contains(t, err.Error(), "bad")
}

func TestSummarizeParseError(t *testing.T) {
	inputs := []Input{{Name: "broken", Text: `[{"s": "a"`}}

	opts := DefaultOptions()
	opts.Parse.Format = records.FormatJSON
	_, err := Summarize(context.Background(), inputs, roles, opts)
	assert.ErrorIs(t, err, records.ErrParse)
}

func TestSummarizeDeferred(t *testing.T) {
	inputs := []Input{{Name: "undated", Text: "s,t,w,y\na,b,2,never\nb,c,3,\n"}}

	_, err := Summarize(context.Background(), inputs, roles, DefaultOptions())
	assert.ErrorIs(t, err, graph.ErrIntervalDeferred)

	opts := DefaultOptions()
	opts.Bounds = &graph.TimeRange{Min: 1, Max: 9}
	sums, err := Summarize(context.Background(), inputs, roles, opts)
	require.NoError(t, err)
	require.Len(t, sums, 1)

	s := sums[0]
	assert.True(t, s.Deferred)
	assert.Equal(t, graph.TimeRange{Min: 1, Max: 9}, *s.Range)
	assert.Equal(t, "b", s.Heaviest)
	assert.Equal(t, 2, s.Records)
}

func TestSummarizeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Summarize(ctx, []Input{{Name: "a", Text: "s,t\nx,y\n"}}, graph.Roles{Source: "s", Target: "t"}, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarizeEmpty(t *testing.T) {
	sums, err := Summarize(context.Background(), nil, roles, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, sums)
}
