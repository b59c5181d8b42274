package cache

// Keyer generates cache keys for the values the pipeline memoises.
type Keyer interface {
	// LayeringKey identifies the layering of a graph by its content hash.
	LayeringKey(graphHash string) string

	// RenderKey identifies a rendered image of a graph.
	RenderKey(graphHash, format string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayeringKey returns "layering:<hash>".
func (DefaultKeyer) LayeringKey(graphHash string) string {
	return "layering:" + graphHash
}

// RenderKey hashes the graph hash together with the output format.
func (DefaultKeyer) RenderKey(graphHash, format string) string {
	return hashKey("render", graphHash, format)
}
