package blob

import (
	"context"
	"fmt"
	"os"

	"voice_courier/internal/domain"
)

// Dir reads recordings from files below a root directory. References that
// escape the root are rejected.
type Dir struct {
	root string
}

func NewDir(root string) *Dir {
	return &Dir{root: root}
}

func (d *Dir) Check(context.Context) error {
	info, err := os.Stat(d.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", d.root)
	}
	return nil
}

func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.BlobFetchError{Ref: name, Err: err}
	}

	f, err := os.OpenInRoot(d.root, name)
	if err != nil {
		return nil, &domain.BlobFetchError{Ref: name, Err: err}
	}
	defer f.Close()

	return readAll(name, f)
}
