package importer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadRecords loads an entire newline-delimited JSON file into memory
// and parses one record per non-blank line. A malformed line is a
// fatal error for the whole run.
func ReadRecords[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var out []T
	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec T
		err := json.Unmarshal([]byte(line), &rec)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// maxRecordLine bounds a single export line. Product descriptions can
// get long but never anywhere near this.
const maxRecordLine = 4 * 1024 * 1024

// StreamRecords parses a newline-delimited JSON file line by line
// without materializing the raw text, calling fn for each record.
// Used for the largest entity to bound peak memory.
func StreamRecords[T any](path string, fn func(T) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordLine)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec T
		err := json.Unmarshal([]byte(line), &rec)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		err = fn(rec)
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}
