package export

import "fmt"

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
}

// Renderer encodes a dataset into file bytes.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
}

// Registry maps format names to renderers.
type Registry map[string]Renderer

// NewRegistry wires the csv, excel and pdf renderers.
func NewRegistry() Registry {
	return Registry{
		"csv":   NewCSVExporter(),
		"excel": NewXLSXExporter(),
		"pdf":   NewPDFExporter(),
	}
}

// Render encodes data with the renderer registered for format.
func (r Registry) Render(format string, data Dataset) ([]byte, error) {
	renderer, ok := r[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	return renderer.Render(data)
}

func requireHeaders(kind string, data Dataset) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", kind)
	}
	return nil
}
