package script

import (
	"errors"
	"os"
	"strings"
)

// ErrEmptyScript возвращается, когда после очистки не осталось ни одной строки.
var ErrEmptyScript = errors.New("сценарий пуст: нужна хотя бы одна непустая строка")

type Source interface {
	CutCount() int
	Cut(index int) (string, error)
}

// Parse разбивает сырой текст на строки-каты: одна непустая строка = один кат.
func Parse(raw string) ([]string, error) {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyScript
	}
	return lines, nil
}

type StringSource struct {
	lines []string
}

func NewStringSource(raw string) (*StringSource, error) {
	lines, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return &StringSource{lines: lines}, nil
}

func (s *StringSource) CutCount() int {
	return len(s.lines)
}

func (s *StringSource) Cut(index int) (string, error) {
	return s.lines[index], nil
}

func (s *StringSource) Lines() []string {
	return s.lines
}

type FileSource struct {
	*StringSource
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src, err := NewStringSource(string(data))
	if err != nil {
		return nil, err
	}
	return &FileSource{StringSource: src, path: path}, nil
}

func (s *FileSource) Path() string {
	return s.path
}
