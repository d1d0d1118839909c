package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// writeBatches stages lines as numbered JSONL files under dir.
// Filenames share the run timestamp so one run's batches sort together
func writeBatches(dir string, start time.Time, lines [][]byte) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	stamp := start.UTC().Format("20060102_150405")
	var files []string

	for n := 0; n*batchSize < len(lines); n++ {
		lo := n * batchSize
		hi := lo + batchSize
		if hi > len(lines) {
			hi = len(lines)
		}

		var buf bytes.Buffer
		for _, line := range lines[lo:hi] {
			buf.Write(line)
			buf.WriteByte('\n')
		}

		name := fmt.Sprintf("events_%s_batch_%03d.jsonl", stamp, n+1)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}
