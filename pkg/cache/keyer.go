package cache

// Keyer derives cache keys. Every option that changes an output must be part
// of its key.
type Keyer interface {
	// DiagramKey addresses diagram source text for a document.
	DiagramKey(docHash string, opts DiagramKeyOpts) string

	// ArtifactKey addresses a rendered image for a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DiagramKeyOpts are the options that change diagram source.
type DiagramKeyOpts struct {
	Format string `json:"format"` // mermaid or dot
	Theme  string `json:"theme"`
}

// ArtifactKeyOpts are the options that change a rendered image.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // svg or png
	Theme  string `json:"theme"`
}

// DefaultKeyer hashes the document hash and options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DiagramKey returns "diagram:<sha256>".
func (DefaultKeyer) DiagramKey(docHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", docHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
