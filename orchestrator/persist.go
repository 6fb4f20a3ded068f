package orchestrator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	LabelExt  = ".lab"
	SignalExt = ".wav"
)

func mkOutDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	return nil
}

// outputPath is the flat, id-named file of an utterance.
func outputPath(dir string, id int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%d%s", id, ext))
}

func createOutput(dir string, id int, ext string) (*os.File, string, error) {
	p := outputPath(dir, id, ext)
	f, err := os.Create(p)
	if err != nil {
		return nil, "", err
	}
	return f, p, nil
}

func copyFile(dst io.Writer, src string) (int64, error) {
	f, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(dst, f)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
