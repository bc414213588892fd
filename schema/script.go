package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Script renders each object as an inline application/ld+json script
// element. encoding/json escapes <, > and &, so the payload cannot close the
// element early.
func Script(objs ...Object) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, obj := range objs {
			if obj == nil {
				continue
			}
			b, err := json.Marshal(obj)
			if err != nil {
				return fmt.Errorf("marshal json-ld: %w", err)
			}
			if _, err := io.WriteString(w, `<script type="application/ld+json">`); err != nil {
				return err
			}
			if _, err := w.Write(b); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "</script>\n"); err != nil {
				return err
			}
		}
		return nil
	})
}
