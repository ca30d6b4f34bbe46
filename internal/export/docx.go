package export

import (
	"bytes"
	"fmt"

	"github.com/fumiama/go-docx"
)

// DOCXRenderer renders the attendee list as a Word document with a numbered
// paragraph per entry.
type DOCXRenderer struct{}

func (DOCXRenderer) Render(doc Document) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText(doc.Title).Size("32").Bold()
	for _, m := range doc.Meta {
		w.AddParagraph().AddText(m).Size("22")
	}
	w.AddParagraph()

	for i, it := range doc.Items {
		w.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, it)).Size("22")
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (DOCXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (DOCXRenderer) Extension() string {
	return "docx"
}
