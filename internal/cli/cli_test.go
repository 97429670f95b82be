package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geogrid-service/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "geogridctl", cmd.Use)

	for _, name := range []string{"precision", "collar", "build"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "precision", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestPrecisionTable(t *testing.T) {
	out, err := execute(t, "precision")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "precision_table", []byte(out))
}

func TestPrecisionSingleZoom(t *testing.T) {
	out, err := execute(t, "precision", "--zoom", "10", "--format", "json")
	require.NoError(t, err)

	var entries []precisionEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, precisionEntry{Zoom: 10, Precision: 5}, entries[0])
}

func TestPrecisionMaxPrecision(t *testing.T) {
	out, err := execute(t, "precision", "--zoom", "21", "--max-precision", "4", "--format", "json")
	require.NoError(t, err)

	var entries []precisionEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Precision)
}

func TestPrecisionZoomOutOfRange(t *testing.T) {
	_, err := execute(t, "precision", "--zoom", "22")
	require.Error(t, err)
}

func TestCollar(t *testing.T) {
	out, err := execute(t, "collar", "--viewport", "1,-1,-1,1", "--format", "json")
	require.NoError(t, err)

	var box domain.BoundingBox
	require.NoError(t, json.Unmarshal([]byte(out), &box))
	assert.Equal(t, domain.NewBoundingBox(2, -2, -2, 2), box)
}

func TestCollarText(t *testing.T) {
	out, err := execute(t, "collar", "--viewport", "1,-1,-1,1")
	require.NoError(t, err)
	assert.Contains(t, out, "collar:   top=2 left=-2 bottom=-2 right=2")
}

func TestCollarInvalidViewport(t *testing.T) {
	tests := []string{"1,2,3", "a,b,c,d", "-1,-1,1,1"}
	for _, vp := range tests {
		t.Run(vp, func(t *testing.T) {
			_, err := execute(t, "collar", "--viewport", vp)
			require.Error(t, err)
		})
	}
}

func TestBuild(t *testing.T) {
	out, err := execute(t, "build", "--field", "location", "--viewport", "1,-1,-1,1", "--zoom", "10", "--format", "json")
	require.NoError(t, err)

	var res BuildResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, 5, res.Precision)
	require.NotNil(t, res.Collar)
	assert.Equal(t, 10, res.Collar.Zoom)
	assert.Equal(t, domain.NewBoundingBox(2, -2, -2, 2), res.Collar.BoundingBox)

	require.Len(t, res.Clauses, 3)
	assert.Equal(t, domain.ClauseFilter, res.Clauses[0].Type)
	assert.Equal(t, domain.ClauseGeohashGrid, res.Clauses[1].Type)
	assert.Equal(t, domain.ClauseGeoCentroid, res.Clauses[2].Type)

	assert.EqualValues(t, 0, res.SearchBody["size"])
	aggs, ok := res.SearchBody["aggs"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, aggs, domain.FilterAggID)
}

func TestBuildLiteralPrecisionWithoutExtras(t *testing.T) {
	out, err := execute(t, "build", "--field", "location", "--viewport", "1,-1,-1,1", "--zoom", "10",
		"--precision", "3", "--no-filter", "--no-centroid", "--format", "json")
	require.NoError(t, err)

	var res BuildResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	assert.Equal(t, 3, res.Precision)
	assert.Nil(t, res.Collar)
	require.Len(t, res.Clauses, 1)
	assert.Equal(t, domain.GridAggID, res.Clauses[0].ID)
}

func TestBuildText(t *testing.T) {
	out, err := execute(t, "build", "--field", "location", "--viewport", "1,-1,-1,1", "--zoom", "14")
	require.NoError(t, err)
	assert.Contains(t, out, "precision: 7")
	assert.Contains(t, out, "1. filter_agg filter")
	assert.Contains(t, out, "search body:")
}

func TestBuildRequiresField(t *testing.T) {
	_, err := execute(t, "build", "--viewport", "1,-1,-1,1", "--zoom", "10")
	require.Error(t, err)
}

func TestBuildUnknownGridBounds(t *testing.T) {
	_, err := execute(t, "build", "--field", "location", "--viewport", "1,-1,-1,1", "--zoom", "10", "--grid-bounds", "world")
	require.Error(t, err)
}
