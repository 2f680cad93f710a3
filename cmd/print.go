package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// printJSON writes v as indented JSON. If query is not empty, only the
// matching part of the document is written.
func printJSON(w io.Writer, v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any = json.RawMessage(data)
	if query != "" {
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			return err
		}
		doc, err = jsonpath.Get(query, parsed)
		if err != nil {
			return fmt.Errorf("invalid query %q: %w", query, err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// output prints v as JSON when asJSON or query is set, otherwise prints the markdown.
func output(v any, md func() string, asJSON bool, query string) error {
	if asJSON || query != "" {
		return printJSON(os.Stdout, v, query)
	}
	printMarkdown(md())
	return nil
}
