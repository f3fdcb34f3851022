package assets

import (
	"fmt"
	"io/fs"
)

// ReadShader reads a GLSL source file. The bytes are returned as-is; the GL backend
// passes an explicit length, so no NUL terminator is appended.
func ReadShader(fsys fs.FS, name string) ([]byte, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("couldn't read shader %q: %w", name, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("shader %q is empty", name)
	}
	return b, nil
}
