package logtail

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Tail returns at most maxLines complete lines from the end of the file at
// path, decoded the same way a worker would decode them, together with the
// offset just past the last newline. A worker started at that offset picks up
// exactly where the returned lines end.
func Tail(path string, maxLines int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log: %w", err)
	}
	size := info.Size()
	if maxLines <= 0 {
		return nil, size, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0

	var dec Decoder
	var consumed int64
	buf := make([]byte, 64*1024)
	reader := io.LimitReader(file, size)
	for {
		n, err := reader.Read(buf)
		if n > 0 {
			consumed += int64(n)
			for _, line := range dec.Feed(buf[:n]) {
				ring[idx] = line
				idx = (idx + 1) % maxLines
				if count < maxLines {
					count++
				}
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read log: %w", err)
		}
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, consumed - int64(dec.Pending()), nil
}
