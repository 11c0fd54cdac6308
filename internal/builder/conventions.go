package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
)

// entrySuffix marks entry-point descriptor files. A descriptor declares
// exactly one implicit reference through its "file" field.
const entrySuffix = ".entry.json"

// snapshotDir is the conventional subdirectory holding co-located
// snapshots next to behavior-spec files.
const snapshotDir = "__snapshots__"

// specSuffixes mark files that participate in the co-located snapshot
// convention.
var specSuffixes = []string{".spec.ts", ".spec.tsx", ".spec.js", ".spec.jsx"}

// builderKinds are file kinds the builder itself claims, independent of any
// registered analyzer, so descriptors are discovered.
var builderKinds = []string{"entry.json"}

// entryDescriptor is the descriptor object loaded from an entry-point file.
type entryDescriptor struct {
	File string `json:"file"`
}

func isEntryPoint(path string) bool {
	return strings.HasSuffix(path, entrySuffix)
}

// entryPointRef loads the descriptor and returns its implicit reference.
// A descriptor that cannot be parsed or lacks the "file" field is a
// malformed entry point, which is fatal for the run.
func entryPointRef(path string, contents []byte) (string, error) {
	var desc entryDescriptor
	if err := jsonc.Unmarshal(contents, &desc); err != nil {
		return "", fmt.Errorf("malformed entry point %s: %w", path, err)
	}
	if desc.File == "" {
		return "", fmt.Errorf("malformed entry point %s: missing \"file\" field", path)
	}
	return desc.File, nil
}

// snapshotSibling returns the absolute path of the co-located snapshot for
// a spec file, and whether it exists on disk right now. Absence is silently
// not an edge.
func snapshotSibling(path string) (string, bool) {
	base := filepath.Base(path)
	matched := false
	for _, suffix := range specSuffixes {
		if strings.HasSuffix(base, suffix) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}

	sibling := filepath.Join(filepath.Dir(path), snapshotDir, base+".snap")
	info, err := os.Stat(sibling)
	if err != nil || info.IsDir() {
		return "", false
	}
	return sibling, true
}
