package logtail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrNotFound reports that the log file does not exist. Errors returned for a
// missing file match both ErrNotFound and fs.ErrNotExist.
var ErrNotFound = errors.New("log file does not exist")

// File is the log resource read on every poll cycle and overwritten when the
// log is cleared.
type File struct {
	Path string
}

// NewFile returns a File for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// ReadAll returns the whole log as text.
func (f *File) ReadAll(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return "", fmt.Errorf("read log: %w", err)
	}
	return string(data), nil
}

// WriteAll replaces the log contents, creating the file when missing.
func (f *File) WriteAll(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(f.Path, []byte(content), mode); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Truncate empties the log.
func (f *File) Truncate(ctx context.Context) error {
	return f.WriteAll(ctx, "")
}

// Tail returns the last maxLines lines of the file at path in file order.
// maxLines <= 0 returns every line. A missing file yields no lines. Lines
// have no length limit.
func Tail(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		lines      []string
		ring       []string
		count, idx int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if maxLines <= 0 {
				lines = append(lines, line)
			} else {
				ring[idx] = line
				idx = (idx + 1) % maxLines
				if count < maxLines {
					count++
				}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
	}
	if maxLines <= 0 {
		return lines, nil
	}

	lines = make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// TailText is Tail joined back into a single snapshot suitable for
// classification.
func TailText(path string, maxLines int) (string, error) {
	lines, err := Tail(path, maxLines)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
