// Package exec implements the command pipelines behind the CLI surface.
package exec

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/charmbracelet/log"

	errUtils "github.com/cfmerge/cfmerge/errors"
	"github.com/cfmerge/cfmerge/pkg/merge"
	"github.com/cfmerge/cfmerge/pkg/schema"
	"github.com/cfmerge/cfmerge/pkg/template"
)

// stdout is a variable for testing, so we can capture `--out -` output.
var stdout io.Writer = os.Stdout

// MergeOptions carries the flag values of the merge command.
type MergeOptions struct {
	BasePath      string
	FragmentPaths []string
	OutputPath    string
}

// ExecuteMerge loads the base and fragment templates, merges them and writes
// the result. The output file is only created after the whole merge has
// succeeded; OutputPath "-" streams to stdout instead.
func ExecuteMerge(settings *schema.Settings, opts *MergeOptions) error {
	if settings == nil {
		return errUtils.ErrNilSettings
	}

	base, err := template.LoadFile(opts.BasePath)
	if err != nil {
		return err
	}

	fragments := make([]*template.Document, 0, len(opts.FragmentPaths))
	for _, path := range opts.FragmentPaths {
		fragment, err := template.LoadFile(path)
		if err != nil {
			return err
		}
		fragments = append(fragments, fragment)
	}

	merged, err := merge.MergeTemplates(base, fragments)
	if err != nil {
		return err
	}

	out, err := template.Marshal(merged, template.EncodeOptions{Indent: settings.Indent})
	if err != nil {
		return err
	}

	if opts.OutputPath == "-" {
		_, err = stdout.Write(out)
		return err
	}

	if err := writeFileAtomic(opts.OutputPath, out); err != nil {
		return err
	}
	log.Debug("wrote merged template", "file", opts.OutputPath, "fragments", len(fragments))
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed run never leaves a partial file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
