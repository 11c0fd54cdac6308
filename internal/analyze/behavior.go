package analyze

import (
	"context"
	"regexp"
	"sort"
)

// behaviorSuffixes mark behavior-specification files. They are a subset of
// the script kinds, so both this analyzer and the script analyzer run over
// the same file and their references are unioned.
var behaviorSuffixes = []string{"spec.ts", "spec.tsx", "spec.js", "spec.jsx"}

// elementNameRe matches custom-element names (hyphenated lowercase tags) in
// markup position or as string literals.
var elementNameRe = regexp.MustCompile("[<'\"`]([a-z][a-z0-9]*(?:-[a-z0-9]+)+)")

// BehaviorAnalyzer correlates behavior-spec files with the files declaring
// the custom elements they exercise. It consults the run-scoped element
// index (declared name -> declaring files) and emits already-absolute
// paths, so a spec depends on every implementation file of each element it
// mentions.
type BehaviorAnalyzer struct{}

var _ Analyzer = (*BehaviorAnalyzer)(nil)

// NewBehaviorAnalyzer creates a BehaviorAnalyzer.
func NewBehaviorAnalyzer() *BehaviorAnalyzer {
	return &BehaviorAnalyzer{}
}

func (a *BehaviorAnalyzer) Match(path string) bool {
	return matchesAny(path, behaviorSuffixes)
}

func (a *BehaviorAnalyzer) Kinds() []string {
	return behaviorSuffixes
}

// Process looks up every custom-element name mentioned in the spec against
// the element index. Names nothing declares are not dependencies — they
// may be third-party elements — and produce no reference.
func (a *BehaviorAnalyzer) Process(ctx context.Context, file File, rt Runtime) ([]string, error) {
	index, err := rt.ElementIndex(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var refs []string
	for _, m := range elementNameRe.FindAllStringSubmatch(string(file.Contents), -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		for _, declaring := range index[name] {
			if declaring == file.Path {
				continue
			}
			refs = append(refs, declaring)
		}
	}
	sort.Strings(refs)
	return refs, nil
}
