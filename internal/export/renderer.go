package export

// Document is the rendering input: a title, a few meta lines and the ordered
// display strings of the attendee list. Renderers own the bytes, the
// formatter owns the content.
type Document struct {
	Title      string
	Meta       []string
	Items      []string
	TwoColumns bool
}

type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
	Extension() string
}
