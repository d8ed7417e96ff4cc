package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text pulls plain text from PDF bytes, best effort. Per-page text is joined
// with a newline and the final result is trimmed.
//
// It never fails past this boundary: corrupt files, unsupported encodings and
// panics inside the PDF library all collapse into an empty string, so callers
// can treat "no text" uniformly.
func Text(data []byte) string {
	text, err := pdfText(data)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func pdfText(data []byte) (text string, err error) {
	// The pdf library panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()

	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("new pdf reader: %w", err)
	}

	var builder strings.Builder
	total := doc.NumPage()
	for page := 1; page <= total; page++ {
		p := doc.Page(page)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
