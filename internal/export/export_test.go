package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslink-tools/crosslink/internal/graph"
)

func sampleResult() *graph.Result {
	return &graph.Result{
		Resolved: graph.EdgeMap{
			"/src/app.ts":    {"/src/button.ts", "/src/theme.css"},
			"/src/button.ts": {},
			"/src/theme.css": {},
		},
		Missing: graph.MissingMap{
			"/src/app.ts": {"@vendor/widgets"},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := GenerateMermaid(sampleResult())

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `N0["app.ts"]`)
	assert.Contains(t, out, `N0 --> N1["button.ts"]`)
	assert.Contains(t, out, `N0 --> N2["theme.css"]`)
	assert.Contains(t, out, `N0 -.-> N3["@vendor/widgets?"]`)
}

func TestGenerateMermaid_Deterministic(t *testing.T) {
	first := GenerateMermaid(sampleResult())
	second := GenerateMermaid(sampleResult())
	assert.Equal(t, first, second)
}

func TestGenerateJSON(t *testing.T) {
	data, err := GenerateJSON(sampleResult())
	require.NoError(t, err)

	var decoded GraphExport
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.NotEmpty(t, decoded.ExportedAt)
	assert.Equal(t, graph.Stats{FileCount: 3, EdgeCount: 2, MissingCount: 1}, decoded.Stats)
	assert.Equal(t, []string{"/src/button.ts", "/src/theme.css"}, decoded.Resolved["/src/app.ts"])
	assert.Equal(t, []string{"@vendor/widgets"}, decoded.Missing["/src/app.ts"])
}
