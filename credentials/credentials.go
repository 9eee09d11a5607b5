// Package credentials materializes a service account credential as a short-lived file for
// APIs that only accept a credentials file path.
package credentials

import (
	"errors"
	"io/fs"
	"os"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/multierr"
)

const pattern = "gsheets-credentials-*.json"

// With writes the credential payload to a new temporary file in dir (the default temporary
// directory if dir is empty), invokes fn with the file path and removes the file once fn
// returns, whether or not fn succeeded. The file is created exclusively with owner-only
// permissions.
//
// An error removing the file is returned, combined with the error from fn if any.
func With(dir string, payload []byte, fn func(path string) error) (err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return pkgerrors.Wrap(err, "unable to create temporary credentials file")
	}

	path := f.Name()

	defer func() {
		if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			err = multierr.Append(err, pkgerrors.Wrapf(rerr, "unable to remove temporary credentials file %v", path))
		}
	}()

	if err := f.Chmod(0600); err != nil {
		f.Close()
		return pkgerrors.Wrap(err, "unable to restrict temporary credentials file permissions")
	}

	if _, err := f.Write(payload); err != nil {
		f.Close()
		return pkgerrors.Wrap(err, "unable to write temporary credentials file")
	}

	if err := f.Close(); err != nil {
		return pkgerrors.Wrap(err, "unable to write temporary credentials file")
	}

	return fn(path)
}
