package worker

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadClaims reads claims from a file, one per line. Blank lines and
// lines starting with # are skipped.
func ReadClaims(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var claims []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		claims = append(claims, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}

	return claims, nil
}
