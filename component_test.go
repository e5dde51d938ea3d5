package brandkit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNodeSerialization(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "element with attribute",
			node: El("div", Attr{"class", "hero"}).With(Text("hi")),
			want: `<div class="hero">hi</div>`,
		},
		{
			name: "text is escaped",
			node: El("p").With(Text(`<script>alert("x")</script>`)),
			want: "<p>&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</p>",
		},
		{
			name: "raw text is not escaped",
			node: El("div").With(RawHTML("<b>bold</b>")),
			want: "<div><b>bold</b></div>",
		},
		{
			name: "void tag has no closing tag",
			node: El("img", Attr{"src", "a.png"}),
			want: `<img src="a.png">`,
		},
		{
			name: "attribute value is escaped",
			node: El("a", Attr{"href", `x"y`}),
			want: `<a href="x&#34;y"></a>`,
		},
		{
			name: "nil children are skipped",
			node: El("ul").With(nil, El("li").With(Text("one")), nil),
			want: "<ul><li>one</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			tt.node.writeTo(&sb)
			if got := sb.String(); got != tt.want {
				t.Errorf("writeTo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeDocument_IncludesDoctype(t *testing.T) {
	got := serializeDocument(El("html"))
	if !strings.HasPrefix(got, "<!DOCTYPE html>\n") {
		t.Errorf("serializeDocument() = %q, want doctype prefix", got)
	}
}

func TestComponentRegistry(t *testing.T) {
	r := NewComponentRegistry()

	if _, ok := r.Lookup("missing"); ok {
		t.Error("Lookup() found an unregistered export")
	}

	r.Register("custom", func(ComponentProps) *Node { return El("div") })
	if _, ok := r.Lookup("custom"); !ok {
		t.Error("Lookup() missed a registered export")
	}

	r.Register("another", func(ComponentProps) *Node { return El("p") })
	names := r.Names()
	if len(names) != 2 || names[0] != "another" || names[1] != "custom" {
		t.Errorf("Names() = %v, want sorted [another custom]", names)
	}
}

func TestDefaultRegistry_BuiltinExports(t *testing.T) {
	r := defaultRegistry()
	for _, name := range []string{"onepager", "story", "linkedin"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("built-in export %q is not registered", name)
		}
	}
}

func TestComponentRenderer_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	// Unparseable descriptor.
	badPath := filepath.Join(dir, "broken"+artifactExt)
	if err := os.WriteFile(badPath, []byte("template: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Descriptor naming no export.
	emptyPath := filepath.Join(dir, "empty"+artifactExt)
	if err := os.WriteFile(emptyPath, []byte("template: empty\nexport: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Descriptor naming an unregistered export.
	writeArtifact(t, dir, "orphan", "nosuch")

	r := newComponentRenderer(defaultRegistry(), dir)

	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{"missing artifact", "absent", ErrInvalidComponentExport},
		{"unparseable artifact", "broken", ErrArtifactParse},
		{"no export named", "empty", ErrInvalidComponentExport},
		{"unregistered export", "orphan", ErrInvalidComponentExport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.load(tt.template)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("load(%q) error = %v, want %v", tt.template, err, tt.wantErr)
			}
		})
	}
}

func TestComponentRenderer_NilTreeFails(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "blank", "blank")

	registry := NewComponentRegistry()
	registry.Register("blank", func(ComponentProps) *Node { return nil })
	r := newComponentRenderer(registry, dir)

	_, err := r.Render("blank", ComponentProps{})
	if !errors.Is(err, ErrInvalidComponentExport) {
		t.Errorf("Render() error = %v, want %v", err, ErrInvalidComponentExport)
	}
}

func TestComponentRenderer_RenderBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "onepager", "onepager")
	r := newComponentRenderer(defaultRegistry(), dir)

	brand := BrandRecord{Name: "Acme", Tagline: "Ship faster"}
	doc, err := testAssembler().Assemble(brand, CampaignParameters{Who: "small teams"}, "onepager")
	if err != nil {
		t.Fatal(err)
	}

	markup, err := r.Render("onepager", ComponentProps{
		Brand:   brand,
		Content: doc,
		Images:  ResolvedImageSet{RoleHero: {"https://img/hero.png"}},
		Tokens:  buildTokens(brand),
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	for _, want := range []string{"<!DOCTYPE html>", "Acme", "Ship faster", "small teams", "https://img/hero.png"} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
}
