package docbridge

// Option configures a DocBridge instance.
type Option func(*DocBridge)

// WithKeepDataURIs configures whether image URLs keep full data URIs
// (default: false, which truncates them to data:mime/type;base64...).
func WithKeepDataURIs(keep bool) Option {
	return func(d *DocBridge) {
		d.keepDataURIs = keep
	}
}

// WithFrontmatter makes the markdown renderer emit document metadata as
// a YAML frontmatter block.
func WithFrontmatter(enabled bool) Option {
	return func(d *DocBridge) {
		d.frontmatter = enabled
	}
}
