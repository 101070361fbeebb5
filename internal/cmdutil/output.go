package cmdutil

import (
	"io"

	"github.com/hookpad/cli/internal/output"
)

// WriteData encodes v as JSON or YAML and writes it to w.
func WriteData(w io.Writer, format output.OutputFormat, v any) error {
	data, err := output.Marshal(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
