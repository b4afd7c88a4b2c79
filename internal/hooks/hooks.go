// Package hooks implements the per-AST-node override registry from
// spec §4.1: a process-wide, set-once-per-node mapping from a
// TypeAlias node's identity to a handler that replaces the
// interpreter's default expansion of that alias.
//
// The registry is consulted only for *ast.TypeAlias nodes, keyed by
// the node's own pointer identity (schema AST nodes are constructed
// once and never copied, so pointer identity is a stable node
// identity exactly as §4.1 requires). It is populated during schema
// construction and read-only thereafter; readers use an RWMutex the
// same way internal/runtime/actor_system.go guards the teacher's
// shared registries, even though this registry is simpler (single
// writer per key, many concurrent readers).
package hooks

import (
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/shapelang/shapecore/internal/ast"
	"github.com/shapelang/shapecore/internal/diagnostic"
)

// Handler replaces the interpreter's default behavior for a TypeAlias
// node. It receives one compiled Parser per already-compiled type
// parameter and returns the Parser to use in place of expanding the
// alias's body.
type Handler func(children ...diagnostic.Parser) diagnostic.Parser

type versionedHandler struct {
	constraint *semver.Constraints
	handler    Handler
}

// Registry is a process-wide hook table.
type Registry struct {
	mu        sync.RWMutex
	plain     map[*ast.TypeAlias]Handler
	versioned map[*ast.TypeAlias][]versionedHandler
	version   *semver.Version
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plain:     make(map[*ast.TypeAlias]Handler),
		versioned: make(map[*ast.TypeAlias][]versionedHandler),
	}
}

// Register records handler for alias. Registering twice for the same
// node is a construction-time programmer error and panics, keeping
// with spec §4.1's "set-once-per-node" contract.
func (r *Registry) Register(alias *ast.TypeAlias, handler Handler) {
	if alias == nil || handler == nil {
		ast.Panicf(ast.CategoryRegistry, "NIL_REGISTER_ARGS", "Register requires a non-nil alias and handler")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plain[alias]; exists {
		ast.Panicf(ast.CategoryRegistry, "DUPLICATE_HOOK", "a handler is already registered for this TypeAlias")
	}

	r.plain[alias] = handler
}

// RegisterVersioned records a handler that only applies when the
// registry's active version (set via SetVersion) satisfies constraint
// (a Masterminds/semver/v3 constraint string, e.g. ">=1.2.0"). Later
// registrations are preferred over earlier ones at lookup time, so
// schemas can layer increasingly specific overrides. Alias may carry
// more than one versioned handler; it may also carry a plain Register
// handler as the version-independent fallback.
//
// An invalid constraint is a construction-time error and panics.
func (r *Registry) RegisterVersioned(alias *ast.TypeAlias, constraint string, handler Handler) {
	if alias == nil || handler == nil {
		ast.Panicf(ast.CategoryRegistry, "NIL_REGISTER_ARGS", "RegisterVersioned requires a non-nil alias and handler")
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		ast.Panicf(ast.CategoryRegistry, "INVALID_VERSION_CONSTRAINT", "invalid version constraint %q: %v", constraint, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.versioned[alias] = append(r.versioned[alias], versionedHandler{constraint: c, handler: handler})
}

// SetVersion sets the version versioned handlers are matched against.
// A nil version (the default) disables all versioned handlers; plain
// Register handlers are unaffected.
func (r *Registry) SetVersion(v *semver.Version) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = v
}

// Lookup returns the handler registered for alias, if any. Versioned
// handlers are checked first, most-recently-registered first, falling
// back to a plain Register handler.
func (r *Registry) Lookup(alias *ast.TypeAlias) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entries, ok := r.versioned[alias]; ok && r.version != nil {
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].constraint.Check(r.version) {
				return entries[i].handler, true
			}
		}
	}

	if h, ok := r.plain[alias]; ok {
		return h, true
	}

	return nil, false
}

// global is the process-wide registry instance, in the style of the
// teacher's "var Common = &CommonDiagnostics{}" package-level
// convenience singleton.
var global = NewRegistry()

// Register registers handler for alias on the process-wide registry.
func Register(alias *ast.TypeAlias, handler Handler) { global.Register(alias, handler) }

// RegisterVersioned registers a version-gated handler on the
// process-wide registry.
func RegisterVersioned(alias *ast.TypeAlias, constraint string, handler Handler) {
	global.RegisterVersioned(alias, constraint, handler)
}

// SetVersion sets the active version on the process-wide registry.
func SetVersion(v *semver.Version) { global.SetVersion(v) }

// Lookup looks up alias on the process-wide registry.
func Lookup(alias *ast.TypeAlias) (Handler, bool) { return global.Lookup(alias) }
