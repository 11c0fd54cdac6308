package builder

import "strings"

// nodeBuiltins is the fixed set of well-known platform built-in module
// identifiers. References to these are dropped by the cascade: neither
// resolved nor missing.
var nodeBuiltins = map[string]bool{
	"assert": true, "async_hooks": true, "buffer": true, "child_process": true,
	"cluster": true, "console": true, "constants": true, "crypto": true,
	"dgram": true, "diagnostics_channel": true, "dns": true, "domain": true,
	"events": true, "fs": true, "http": true, "http2": true, "https": true,
	"inspector": true, "module": true, "net": true, "os": true, "path": true,
	"perf_hooks": true, "process": true, "punycode": true, "querystring": true,
	"readline": true, "repl": true, "stream": true, "string_decoder": true,
	"timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// IsBuiltin reports whether ref names a platform built-in module, with or
// without the "node:" scheme prefix. Subpath imports like "fs/promises"
// count as built-in too.
func IsBuiltin(ref string) bool {
	name := strings.TrimPrefix(ref, "node:")
	if slash := strings.IndexByte(name, '/'); slash >= 0 {
		name = name[:slash]
	}
	return nodeBuiltins[name]
}
