package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/tempograph/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) []records.Record {
	t.Helper()
	recs, err := records.Parse(text, records.DefaultOptions())
	require.NoError(t, err)
	return recs
}

func nodeWeights(g *Graph) map[string]float64 {
	out := make(map[string]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Weight
	}
	return out
}

func TestMap(t *testing.T) {
	t.Run("Map temporal example", func(t *testing.T) {
		recs := parse(t, "col1,col2,col3\na,b,2020\nb,c,2021\n")

		g, err := Map(recs, Roles{Source: "col1", Target: "col2", Interval: "col3"})

		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"a": 1, "b": 2, "c": 1}, nodeWeights(g))
		assert.Equal(t, []string{"a", "b", "c"}, []string{g.Nodes[0].ID, g.Nodes[1].ID, g.Nodes[2].ID})
		require.Len(t, g.Edges, 2)
		assert.Equal(t, "a", g.Edges[0].Source)
		assert.Equal(t, "b", g.Edges[0].Target)
		assert.Nil(t, g.Edges[0].Weight)
		require.NotNil(t, g.Edges[1].Interval)
		assert.Equal(t, 2021, *g.Edges[1].Interval)
		require.NotNil(t, g.Range)
		assert.Equal(t, TimeRange{Min: 2020, Max: 2021}, *g.Range)
		assert.True(t, g.Temporal())
	})

	t.Run("Map weighted edges aggregates per endpoint", func(t *testing.T) {
		recs := parse(t, "source,target,w\na,b,2\na,c,0.5\nc,b,\n")

		g, err := Map(recs, Roles{Source: "source", Target: "target", Weight: "w"})

		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"a": 2.5, "b": 3, "c": 1.5}, nodeWeights(g))
		assert.Nil(t, g.Range)
		assert.False(t, g.Temporal())
		assert.Nil(t, g.Edges[2].Weight, "empty weight should be unweighted")
	})

	t.Run("Map degrades bad values per record", func(t *testing.T) {
		recs := parse(t, "s,t,w,y\na,b,heavy,soon\nb,c,-3,1999-04-01\nc,d,NaN, 42abc\n")

		g, err := Map(recs, Roles{Source: "s", Target: "t", Weight: "w", Interval: "y"})

		require.NoError(t, err)
		require.Len(t, g.Edges, 3)
		for _, e := range g.Edges {
			assert.Nil(t, e.Weight, "edge %s", e)
		}
		assert.Nil(t, g.Edges[0].Interval)
		assert.Equal(t, 1999, *g.Edges[1].Interval)
		assert.Equal(t, 42, *g.Edges[2].Interval)
		assert.Equal(t, TimeRange{Min: 42, Max: 1999}, *g.Range)
	})

	t.Run("Map self-loop counts twice", func(t *testing.T) {
		recs := parse(t, "source,target,w\na,a,3\na,b,\n")

		g, err := Map(recs, Roles{Source: "source", Target: "target", Weight: "w"})

		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"a": 7, "b": 1}, nodeWeights(g))
		assert.True(t, g.Edges[0].SelfLoop())
	})

	t.Run("Map skips records without endpoints", func(t *testing.T) {
		recs := parse(t, `[{"source":"a","target":"b"},{"source":"b"},{"source":null,"target":"c"}]`)

		g, err := Map(recs, Roles{Source: "source", Target: "target"})

		require.NoError(t, err)
		assert.Len(t, g.Edges, 1)
		assert.Equal(t, 2, g.Skipped)
		_, ok := g.Node("c")
		assert.False(t, ok)
	})

	t.Run("Map keeps empty endpoint values as node ids", func(t *testing.T) {
		recs := parse(t, "source,target\na,\n,b\n")

		g, err := Map(recs, Roles{Source: "source", Target: "target"})

		require.NoError(t, err)
		require.Len(t, g.Edges, 2)
		assert.Equal(t, 0, g.Skipped)
		assert.Equal(t, map[string]float64{"a": 1, "": 2, "b": 1}, nodeWeights(g))
		assert.Equal(t, "", g.Edges[0].Target)
	})
}

func TestMapMissingRole(t *testing.T) {
	recs := parse(t, "source,target\na,b\n")

	tests := []struct {
		name  string
		roles Roles
		role  string
	}{
		{"empty target", Roles{Source: "source"}, "target"},
		{"empty source", Roles{Target: "target"}, "source"},
		{"unknown source", Roles{Source: "from", Target: "target"}, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Map(recs, tt.roles)

			assert.Nil(t, g)
			require.ErrorIs(t, err, ErrMissingRole)
			var mre *MissingRoleError
			require.True(t, errors.As(err, &mre))
			assert.Equal(t, tt.role, mre.Role)
		})
	}

	t.Run("Map no records", func(t *testing.T) {
		_, err := Map(nil, Roles{Source: "source", Target: "target"})
		assert.ErrorIs(t, err, ErrMissingRole)
	})
}

func TestMapIntervalDeferred(t *testing.T) {
	recs := parse(t, "source,target,when\na,b,unknown\nb,c,\n")

	g, err := Map(recs, Roles{Source: "source", Target: "target", Interval: "when"})

	assert.Nil(t, g)
	require.ErrorIs(t, err, ErrIntervalDeferred)
	var d *IntervalResolutionDeferred
	require.True(t, errors.As(err, &d))
	assert.Len(t, d.Graph.Edges, 2)
	assert.Nil(t, d.Graph.Range)

	t.Run("Resolve with bounds", func(t *testing.T) {
		resolved, err := d.Resolve(1990, 2000)

		require.NoError(t, err)
		assert.Equal(t, TimeRange{Min: 1990, Max: 2000}, *resolved.Range)
		assert.Nil(t, d.Graph.Range, "deferred graph must stay untouched")
	})

	t.Run("Resolve rejects inverted bounds", func(t *testing.T) {
		_, err := d.Resolve(2000, 1990)
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestMapProperties(t *testing.T) {
	text := "s,t,w,y\na,b,2,2001\nb,c,,2003\nc,a,4,1999\nd,d,1.5,\ne,a,0,2002\n"
	recs := parse(t, text)
	roles := Roles{Source: "s", Target: "t", Weight: "w", Interval: "y"}

	g1, err := Map(recs, roles)
	require.NoError(t, err)
	g2, err := Map(recs, roles)
	require.NoError(t, err)

	t.Run("idempotent", func(t *testing.T) {
		assert.ElementsMatch(t, g1.Nodes, g2.Nodes)
		assert.ElementsMatch(t, g1.Edges, g2.Edges)
		assert.Equal(t, g1.Range, g2.Range)
	})

	t.Run("weight conservation", func(t *testing.T) {
		want := 0.0
		for _, e := range g1.Edges {
			want += 2 * e.EffectiveWeight()
		}
		assert.InDelta(t, want, g1.TotalWeight(), 1e-9)
	})

	t.Run("range covers every interval", func(t *testing.T) {
		for _, e := range g1.Edges {
			if e.Interval != nil {
				assert.True(t, g1.Range.Contains(*e.Interval), "edge %s interval %d", e, *e.Interval)
			}
		}
	})

	t.Run("node set matches edge endpoints", func(t *testing.T) {
		ends := make(map[string]bool)
		for _, e := range g1.Edges {
			ends[e.Source] = true
			ends[e.Target] = true
		}
		assert.Len(t, g1.Nodes, len(ends))
		for id := range ends {
			_, ok := g1.Node(id)
			assert.True(t, ok, id)
		}
	})
}

func TestSuggestRoles(t *testing.T) {
	assert.Equal(t, Roles{Source: "source", Target: "target"}, SuggestRoles([]string{"year", "target", "source"}))
	assert.Equal(t, Roles{}, SuggestRoles([]string{"from", "to"}))
}

func TestRolesMerge(t *testing.T) {
	r := Roles{Source: "a"}.Merge(Roles{Source: "x", Target: "b", Interval: "y"})
	assert.Equal(t, Roles{Source: "a", Target: "b", Interval: "y"}, r)
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"2020", intPtr(2020)},
		{"  -12", intPtr(-12)},
		{"+7x", intPtr(7)},
		{"12.9", intPtr(12)},
		{"-12.9", intPtr(-12)},
		{"2.02e3", intPtr(2020)},
		{"2020E0", intPtr(2020)},
		{"9223372036854775807", intPtr(math.MaxInt)},
		{"1e400", nil},
		{"2020-05-01", intPtr(2020)},
		{"", nil},
		{"-", nil},
		{"year", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseInterval(tt.in), "input %q", tt.in)
	}
}

func TestMapJSONExponentInterval(t *testing.T) {
	opts := records.DefaultOptions()
	opts.Format = records.FormatJSON
	recs, err := records.Parse(`[{"s":"a","t":"b","y":2.02e3},{"s":"b","t":"c","y":2021.0}]`, opts)
	require.NoError(t, err)

	g, err := Map(recs, Roles{Source: "s", Target: "t", Interval: "y"})

	require.NoError(t, err)
	assert.Equal(t, 2020, *g.Edges[0].Interval)
	assert.Equal(t, 2021, *g.Edges[1].Interval)
	assert.Equal(t, TimeRange{Min: 2020, Max: 2021}, *g.Range)
}

func intPtr(v int) *int { return &v }
