package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoWords is returned when a word list source contains no entries
var ErrNoWords = errors.New("word list is empty")

// LoadFile reads a candidate word list, one word per line. Blank lines and
// lines starting with '#' are skipped. Order is preserved.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a word list from r
func Read(r io.Reader) ([]string, error) {
	var list []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}

	if len(list) == 0 {
		return nil, ErrNoWords
	}

	return list, nil
}
