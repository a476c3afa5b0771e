package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PageCount opens the PDF and reports its number of pages. A document that
// does not parse or has no pages is rejected.
func PageCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty pdf")
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	n := r.NumPage()
	if n < 1 {
		return 0, errors.New("pdf has no pages")
	}
	return n, nil
}
