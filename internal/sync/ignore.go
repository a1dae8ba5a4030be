package sync

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdrive-tools/gsync/internal/utils"
	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the per-directory ignore specifier: one name per line.
// It applies only to the directory it sits in.
const IgnoreFileName = ".gsyncignore"

var alwaysIgnoreLines = []string{
	IgnoreFileName,
	// OS artifacts
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	".directory",
}

// IgnoreList decides which local names the push engine skips.
type IgnoreList struct {
	dir    string
	ignore *gitignore.GitIgnore
}

func NewIgnoreList(dir string) *IgnoreList {
	return &IgnoreList{dir: dir}
}

// Load reads the directory's ignore file, if present, on top of the fixed
// always-ignore set.
func (l *IgnoreList) Load() {
	lines := append([]string{}, alwaysIgnoreLines...)

	path := filepath.Join(l.dir, IgnoreFileName)
	if utils.FileExists(path) {
		file, err := os.Open(path)
		if err != nil {
			slog.Warn("failed to open ignore file", "path", path, "error", err)
		} else {
			defer file.Close()

			rules := 0
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				lines = append(lines, line)
				rules++
			}
			if err := scanner.Err(); err != nil {
				slog.Warn("error reading ignore file", "path", path, "error", err)
			} else {
				slog.Debug("loaded ignore file", "path", path, "rules", rules)
			}
		}
	}

	l.ignore = gitignore.CompileIgnoreLines(lines...)
}

// ShouldIgnore reports whether a local entry name is excluded from push.
func (l *IgnoreList) ShouldIgnore(name string) bool {
	return l.ignore.MatchesPath(name)
}
