package brandkit

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kferr/go-brandkit/internal/yamlutil"
)

// ComponentProps is the props object passed to a renderable component:
// the assembled content document plus the brand record and campaign tuple.
type ComponentProps struct {
	Brand    BrandRecord
	Campaign CampaignParameters
	Content  *ContentDocument
	Images   ResolvedImageSet
	Tokens   DesignTokens
}

// Renderable is a component render function. It is statically typed: the
// capability check happens once when the artifact is loaded, not deep in
// rendering.
type Renderable func(ComponentProps) *Node

// Attr is one HTML attribute. Attributes serialize in insertion order so
// output is deterministic.
type Attr struct {
	Key string
	Val string
}

// Node is one node of a component's markup tree. A node is either an
// element (Tag set) or a text node (Tag empty).
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node

	// Text holds the content of a text node. When Raw is set the text is
	// emitted verbatim instead of being escaped; callers own its safety.
	Text string
	Raw  bool
}

// El creates an element node.
func El(tag string, attrs ...Attr) *Node {
	return &Node{Tag: tag, Attrs: attrs}
}

// Text creates an escaped text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// RawHTML creates a text node emitted without escaping.
func RawHTML(s string) *Node {
	return &Node{Text: s, Raw: true}
}

// With appends children and returns the node for chaining.
func (n *Node) With(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// voidTags never carry children or a closing tag.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true,
}

// writeTo serializes the node into sb.
func (n *Node) writeTo(sb *strings.Builder) {
	if n.Tag == "" {
		if n.Raw {
			sb.WriteString(n.Text)
		} else {
			sb.WriteString(html.EscapeString(n.Text))
		}
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Val))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	if voidTags[n.Tag] {
		return
	}
	for _, c := range n.Children {
		c.writeTo(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// serializeDocument renders a node tree to a self-contained markup string
// including the doctype.
func serializeDocument(root *Node) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	root.writeTo(&sb)
	return sb.String()
}

// ComponentRegistry maps export names to renderable components.
// Safe for concurrent use.
type ComponentRegistry struct {
	mu      sync.RWMutex
	exports map[string]Renderable
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{exports: make(map[string]Renderable)}
}

// Register adds or replaces an export.
func (r *ComponentRegistry) Register(name string, fn Renderable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports[name] = fn
}

// Lookup returns the export and whether it exists.
func (r *ComponentRegistry) Lookup(name string) (Renderable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.exports[name]
	return fn, ok
}

// Names returns the registered export names, sorted.
func (r *ComponentRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.exports))
	for name := range r.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// artifactDescriptor is the on-disk component artifact: a YAML file naming
// the default export to invoke for a template slot.
type artifactDescriptor struct {
	Template string `yaml:"template"`
	Export   string `yaml:"export"`
}

// artifactExt is the descriptor suffix scanned for in the component dir.
const artifactExt = ".component.yaml"

// componentRenderer bundles a registry and an artifact directory and
// executes components headlessly against the assembled content document.
type componentRenderer struct {
	registry *ComponentRegistry
	dir      string
}

// newComponentRenderer creates a renderer over dir. An empty dir means no
// artifacts are available and the engine resolver skips component-ssr.
func newComponentRenderer(registry *ComponentRegistry, dir string) *componentRenderer {
	return &componentRenderer{registry: registry, dir: dir}
}

// artifactPath returns the descriptor path for a template slot.
func (r *componentRenderer) artifactPath(template string) string {
	return filepath.Join(r.dir, template+artifactExt)
}

// HasArtifact reports whether a component artifact exists for the template.
func (r *componentRenderer) HasArtifact(template string) bool {
	if r.dir == "" {
		return false
	}
	info, err := os.Stat(r.artifactPath(template))
	return err == nil && !info.IsDir()
}

// load reads and validates the artifact once. A missing, unparseable, or
// unregistered export fails fast with ErrInvalidComponentExport rather than
// propagating a failure deep in rendering.
func (r *componentRenderer) load(template string) (Renderable, error) {
	data, err := os.ReadFile(r.artifactPath(template))
	if err != nil {
		return nil, fmt.Errorf("%w: reading artifact for %q: %v", ErrInvalidComponentExport, template, err)
	}

	var desc artifactDescriptor
	if err := yamlutil.UnmarshalStrict(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactParse, err)
	}
	if desc.Export == "" {
		return nil, fmt.Errorf("%w: artifact for %q names no export", ErrInvalidComponentExport, template)
	}

	fn, ok := r.registry.Lookup(desc.Export)
	if !ok || fn == nil {
		return nil, fmt.Errorf("%w: export %q is not registered", ErrInvalidComponentExport, desc.Export)
	}
	return fn, nil
}

// Render executes the component for the template slot in a single
// synchronous pass and serializes the returned tree with a doctype.
func (r *componentRenderer) Render(template string, props ComponentProps) (string, error) {
	fn, err := r.load(template)
	if err != nil {
		return "", err
	}

	root := fn(props)
	if root == nil {
		return "", fmt.Errorf("%w: export for %q returned no markup tree", ErrInvalidComponentExport, template)
	}
	return serializeDocument(root), nil
}
