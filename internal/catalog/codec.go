package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/kjk/common/atomicfile"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Load reads a catalog: the first line is the header and is discarded, every
// following line must parse as a product. A malformed line fails the whole
// load with a *types.FormatError carrying its line number. Lines have no
// length limit, so anything Save writes loads back.
func Load(r io.Reader) ([]types.Product, error) {
	products := []types.Product{}
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, err := ReadLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading catalog: %w", types.ErrStorage, err)
		}
		if lineNo == 1 {
			continue
		}
		p, err := types.ParseProduct(line)
		if err != nil {
			var fe *types.FormatError
			if errors.As(err, &fe) {
				fe.Line = lineNo
			}
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// ReadLine returns the next line of r without its "\n" or "\r\n" ending.
// The final line may lack a newline. io.EOF is returned only once r has no
// data left.
func ReadLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Save writes the header followed by one line per product.
func Save(w io.Writer, products []types.Product) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(types.Header + "\n"); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := bw.WriteString(p.Line() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile reads the catalog at path. A missing file is an empty catalog.
func LoadFile(path string) ([]types.Product, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrStorage, path, err)
	}
	defer f.Close()
	return Load(f)
}

// SaveFile replaces the catalog at path through an atomic temp-file rename,
// so a failed write leaves the previous contents intact.
func SaveFile(path string, products []types.Product) error {
	f, err := atomicfile.New(path)
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", types.ErrStorage, err)
	}
	defer f.RemoveIfNotClosed()

	if err := Save(f, products); err != nil {
		return fmt.Errorf("%w: writing catalog: %w", types.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: replacing catalog: %w", types.ErrStorage, err)
	}
	// The temp file is created 0600.
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("%w: setting permissions: %w", types.ErrStorage, err)
	}
	return nil
}
