package validator

// Options carries the whitelists and thresholds the passes consult.
// DefaultOptions matches the shipped HoloScript runtime surface; a holo.toml
// manifest may extend the whitelists and override the thresholds without
// changing behavior for scripts that stay inside the defaults.
type Options struct {
	// Keywords are the statement keywords of the language. Calls that are
	// really keyword parentheses ("if(x)") are never flagged as unknown
	// functions.
	Keywords []string

	// Functions is the whitelist of recognized builtins; any other
	// identifier followed by '(' draws an unknown-function warning.
	Functions []string

	// Types is the whitelist of constructable types; `new T(...)` with an
	// unlisted T draws an unknown-type warning.
	Types []string

	// FrameworkCalls are the builtins that require a constructed HoloCore.
	// Seeing any of them in a script that never constructs the core
	// produces a single warning.
	FrameworkCalls []string

	// ComputeCalls mark numeric kernels; a loop line containing one gets a
	// vectorization suggestion.
	ComputeCalls []string

	// MaxLoopDepth is the deepest accepted loop nesting; exceeding it on a
	// loop line draws a warning.
	MaxLoopDepth int

	// LargeAllocation is the allocateMemory size (in cells) above which a
	// warning is emitted.
	LargeAllocation int

	// LargeScriptLines is the line count above which a script without any
	// async usage gets an async suggestion.
	LargeScriptLines int
}

// IsZero reports whether no field is set. Callers treat a zero Options as
// "use DefaultOptions"; anything partially filled is taken verbatim.
func (o Options) IsZero() bool {
	return len(o.Keywords) == 0 &&
		len(o.Functions) == 0 &&
		len(o.Types) == 0 &&
		len(o.FrameworkCalls) == 0 &&
		len(o.ComputeCalls) == 0 &&
		o.MaxLoopDepth == 0 &&
		o.LargeAllocation == 0 &&
		o.LargeScriptLines == 0
}

// DefaultOptions returns the built-in runtime surface and thresholds.
func DefaultOptions() Options {
	return Options{
		Keywords: []string{
			"function", "if", "else", "for", "while", "foreach", "return",
			"let", "const", "var", "new", "async", "await", "import",
			"export", "true", "false", "null",
		},
		Functions: []string{
			"print", "log", "alert", "wait", "emit",
			"loadPlugin", "unloadPlugin",
			"allocateMemory", "deallocate",
			"createHologram", "destroyHologram",
			"setPosition", "setRotation", "setScale",
			"animate", "playSound", "projectBeam",
			"compute", "matrixMultiply", "dotProduct",
			"httpGet", "httpPost", "readFile", "writeFile",
		},
		Types: []string{
			"HoloCore", "Hologram", "Plugin", "Buffer",
			"Vector3", "Matrix4", "Quaternion", "Color",
		},
		// loadPlugin is excluded: its misuse already has a dedicated
		// ordering warning in the semantic pass.
		FrameworkCalls: []string{
			"createHologram", "destroyHologram",
			"setPosition", "setRotation", "setScale",
			"animate", "playSound", "projectBeam",
		},
		ComputeCalls: []string{
			"compute", "matrixMultiply", "dotProduct",
		},
		MaxLoopDepth:     3,
		LargeAllocation:  10000,
		LargeScriptLines: 50,
	}
}

// fixed language facts the heuristics rely on; not part of the
// configuration surface.
const (
	commentMarker  = "//"
	coreTypeName   = "HoloCore"
	allocCallName  = "allocateMemory"
	freeCallName   = "deallocate"
	pluginLoad     = "loadPlugin"
	deprecatedDecl = "var"
	modernDecl     = "let"
)

var loopKeywords = []string{"for", "while", "foreach"}

var asyncKeywords = []string{"async", "await"}

// terminatorExempt are the keywords whose lines legitimately end without
// '{', '}' or ';' (headers split over lines, declarations, etc.).
var terminatorExempt = []string{"function", "if", "for", "while"}
