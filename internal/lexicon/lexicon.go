// Package lexicon loads the word polarity table used for scoring.
//
// The file format is AFINN's: one "<word>\t<integer>" entry per line with no
// header. A Lexicon is immutable once loaded and safe for concurrent reads.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/sentiscore/internal/apperr"
)

const separator = "\t"

type Lexicon struct {
	entries map[string]int32
}

// New builds a Lexicon from an existing map. The map is copied.
func New(entries map[string]int32) *Lexicon {
	copied := make(map[string]int32, len(entries))
	for word, score := range entries {
		copied[word] = score
	}
	return &Lexicon{entries: copied}
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("[Lexicon] failed to open %s: %w", path, err)
	}
	defer f.Close()

	lex, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("[Lexicon] failed to load %s: %w", path, err)
	}

	slog.Info("[Lexicon] Loaded lexicon",
		slog.String("path", path),
		slog.Int("entries", lex.Len()))
	return lex, nil
}

// Load parses r. Any line that is not exactly a non-empty word and a 32-bit
// integer separated by one tab fails the whole load, blank lines included.
// A trailing "\r" is ignored and later duplicates replace earlier ones.
func Load(r io.Reader) (*Lexicon, error) {
	entries := make(map[string]int32)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		word, score, err := parseLine(line)
		if err != nil {
			return nil, err.WithContext("line", lineNo)
		}
		entries[word] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("[Lexicon] failed to read lexicon: %w", err)
	}

	return &Lexicon{entries: entries}, nil
}

func parseLine(line string) (string, int32, *apperr.Error) {
	fields := strings.Split(line, separator)
	if len(fields) != 2 {
		return "", 0, apperr.MalformedEntry(
			fmt.Sprintf("expected word and score separated by a tab, got %d field(s): %q", len(fields), line), nil)
	}
	if fields[0] == "" {
		return "", 0, apperr.MalformedEntry(fmt.Sprintf("empty word: %q", line), nil)
	}

	score, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return "", 0, apperr.MalformedEntry(fmt.Sprintf("invalid score for %q", fields[0]), err)
	}
	return fields[0], int32(score), nil
}

// Lookup returns the score of word and whether it is in the lexicon.
func (l *Lexicon) Lookup(word string) (int32, bool) {
	score, ok := l.entries[word]
	return score, ok
}

// Score returns the score of word, or 0 when it is absent.
func (l *Lexicon) Score(word string) int32 {
	return l.entries[word]
}

func (l *Lexicon) Len() int {
	return len(l.entries)
}
