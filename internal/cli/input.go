package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/fetch"
)

// docPrefix selects a saved document as input: doc:<id>.
const docPrefix = "doc:"

// input is a loaded document and where it came from.
type input struct {
	name string
	data []byte
}

// readInput loads arg: a file path, an http(s) URL, "-" or "" for stdin,
// or doc:<id>.
func (c *CLI) readInput(ctx context.Context, arg string) (input, error) {
	switch {
	case arg == "" || arg == "-":
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return input{}, fmt.Errorf("read stdin: %w", err)
		}
		return input{name: "stdin", data: data}, nil

	case strings.HasPrefix(arg, docPrefix):
		s, err := c.newStore(ctx)
		if err != nil {
			return input{}, err
		}
		defer s.Close()
		doc, err := s.Get(ctx, strings.TrimPrefix(arg, docPrefix))
		if err != nil {
			return input{}, err
		}
		return input{name: doc.Name, data: []byte(doc.Content)}, nil

	case fetch.IsURL(arg):
		fc := c.cfg.Fetch
		client := fetch.New(fetch.Options{
			Timeout:  fc.Timeout.Duration,
			MaxBytes: fc.MaxBytes,
			Attempts: fc.Attempts,
		})
		loggerFromContext(ctx).Debug("fetching", "url", arg)
		data, err := client.Get(ctx, arg)
		if err != nil {
			return input{}, err
		}
		return input{name: arg, data: data}, nil
	}

	data, err := os.ReadFile(arg)
	if os.IsNotExist(err) {
		return input{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "file %s not found", arg)
	}
	if err != nil {
		return input{}, fmt.Errorf("read %s: %w", arg, err)
	}
	return input{name: arg, data: data}, nil
}

// argOrStdin returns the first argument or "" when there is none.
func argOrStdin(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// writeOutput writes data to path, or to stdout when path is empty.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// marshalIndent encodes v as indented JSON with a trailing newline.
func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
