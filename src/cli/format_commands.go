package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"oreore-lsp/src/format"
	"oreore-lsp/src/internal/common"
)

// stdinName labels stdin in diffs
const stdinName = "<stdin>"

// FormatOptions selects what RunFormat does with the result
type FormatOptions struct {
	// Write rewrites changed files in place
	Write bool
	// Diff prints a unified diff instead of the formatted text
	Diff bool
}

// RunFormat strips leading whitespace from each file, or from in when no
// files are given
func RunFormat(in io.Reader, out io.Writer, files []string, opts FormatOptions) error {
	if len(files) == 0 {
		if opts.Write {
			return fmt.Errorf("--%s needs at least one file", FlagWrite)
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return emitFormatted(out, stdinName, string(data), opts)
	}

	var failed int
	for _, file := range files {
		if err := formatFile(out, file, opts); err != nil {
			common.CLILogger.Error("%s: %v", file, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be formatted", failed, len(files))
	}
	return nil
}

func formatFile(out io.Writer, path string, opts FormatOptions) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	original := string(data)

	if opts.Write {
		if !format.Changed(original) {
			common.CLILogger.Debug("%s already formatted", path)
		} else {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(format.StripLeadingWhitespace(original)), info.Mode().Perm()); err != nil {
				return err
			}
			common.CLILogger.Info("formatted %s", path)
		}
		if !opts.Diff {
			return nil
		}
	}

	return emitFormatted(out, path, original, opts)
}

func emitFormatted(out io.Writer, name, original string, opts FormatOptions) error {
	formatted := format.StripLeadingWhitespace(original)
	if opts.Diff {
		return writeDiff(out, name, original, formatted)
	}
	_, err := io.WriteString(out, formatted)
	return err
}

// writeDiff prints a unified diff; nothing for identical texts
func writeDiff(out io.Writer, name, before, after string) error {
	if before == after {
		return nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	unified := gotextdiff.ToUnified("a/"+name, "b/"+name, before, edits)
	_, err := fmt.Fprint(out, unified)
	return err
}
