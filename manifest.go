package brandkit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kferr/go-brandkit/internal/fileutil"
)

// Manifest records how an artifact was produced. It is written alongside
// the artifact so downstream consumers can trace engine and parameters
// without re-running the pipeline.
type Manifest struct {
	ID          string    `json:"id"`
	Brand       string    `json:"brand"`
	Template    string    `json:"template"`
	Engine      Engine    `json:"engine"`
	Format      string    `json:"format"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Scale       int       `json:"scale"`
	GeneratedAt time.Time `json:"generatedAt"`

	// SourcePrompt is set only for remote-engine renders that report one.
	SourcePrompt string `json:"sourcePrompt,omitempty"`

	ArtifactPath string `json:"artifactPath"`
}

// newManifest builds a manifest for a completed render.
func newManifest(req RenderRequest, artifact *RenderArtifact, prompt string) Manifest {
	return Manifest{
		ID:           uuid.NewString(),
		Brand:        req.Brand.Slug,
		Template:     req.Template,
		Engine:       artifact.Engine,
		Format:       artifact.Format,
		Width:        artifact.Width,
		Height:       artifact.Height,
		Scale:        artifact.Scale,
		GeneratedAt:  artifact.GeneratedAt,
		SourcePrompt: prompt,
		ArtifactPath: artifact.Path,
	}
}

// manifestPath derives the manifest location from the artifact path.
func manifestPath(artifactPath string) string {
	return artifactPath + ".manifest.json"
}

// write persists the manifest atomically next to the artifact.
func (m Manifest) write() error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(manifestPath(m.ArtifactPath), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
