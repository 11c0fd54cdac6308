package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crosslink-tools/crosslink/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a gather result.
// Resolved edges become solid arrows; missing references become dashed
// arrows to a node labeled with the raw reference string.
func GenerateMermaid(result *graph.Result) string {
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(key string) string {
		if id, ok := nodeIDs[key]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[key] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, source := range result.Resolved.SortedKeys() {
		srcID := getID(source)
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", srcID, filepath.Base(source)))
		for _, target := range result.Resolved[source] {
			sb.WriteString(fmt.Sprintf("  %s --> %s[\"%s\"]\n",
				srcID, getID(target), filepath.Base(target)))
		}
	}

	missingSources := make([]string, 0, len(result.Missing))
	for source := range result.Missing {
		missingSources = append(missingSources, source)
	}
	sort.Strings(missingSources)

	for _, source := range missingSources {
		srcID := getID(source)
		for _, ref := range result.Missing[source] {
			sb.WriteString(fmt.Sprintf("  %s -.-> %s[\"%s?\"]\n",
				srcID, getID("missing:"+ref), ref))
		}
	}

	return sb.String()
}
