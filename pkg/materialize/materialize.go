// Package materialize executes a manifest against a brand-new project
// root.
//
// The only transactional guarantee is the precondition: if the project
// root already exists nothing is touched. Once writing has started, the
// first failure aborts the run and whatever was written so far stays on
// disk. Rollback is deliberately not provided.
package materialize

import (
	"io"
	"os"
	"path/filepath"

	"github.com/protree/protree/pkg/errors"
	"github.com/protree/protree/pkg/logging"
	"github.com/protree/protree/pkg/manifest"
)

// Materialize creates projectRoot and writes the manifest's directories
// and file operations into it. projectRoot must not exist yet.
func Materialize(projectRoot string, m *manifest.Manifest) error {
	logger := logging.GetLogger("materialize")

	if _, err := os.Lstat(projectRoot); err == nil {
		return errors.Newf(errors.ErrTargetExists, "target %q already exists, refusing to write into it", projectRoot)
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to check target %s", projectRoot)
	}

	logger.Info().
		Str("root", projectRoot).
		Int("dirs", len(m.Dirs)).
		Int("operations", len(m.Operations)).
		Msg("Materializing project")

	if err := os.MkdirAll(projectRoot, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create project root %s", projectRoot)
	}

	for _, dir := range m.Dirs {
		path := filepath.Join(projectRoot, dir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
		}
	}

	for _, op := range m.Operations {
		if err := apply(projectRoot, op); err != nil {
			logger.Error().
				Str("target", op.Target).
				Err(err).
				Msg("Aborting materialization, partial tree left on disk")
			return err
		}
		logger.Debug().Str("target", op.Target).Msg("Wrote file")
	}

	return nil
}

// apply executes one file operation under projectRoot.
func apply(projectRoot string, op manifest.FileOperation) error {
	target := filepath.Join(projectRoot, op.Target)

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent directory for %s", target)
	}

	if op.Transform == nil {
		return copyFile(op.Source, target)
	}

	data, err := os.ReadFile(op.Source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to read template file %s", op.Source)
	}
	transformed := op.Transform(string(data))
	if err := os.WriteFile(target, []byte(transformed), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
	}
	return nil
}

// copyFile copies src to dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to open template file %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to finalize %s", dst)
	}
	return nil
}
