package vault

import (
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// memFS is an in-memory FileSystem.
type memFS struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes int
}

func newMemFS(files map[string]string) *memFS {
	m := &memFS{files: map[string][]byte{}}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	m.writes++
	return nil
}

func (m *memFS) get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return string(data), ok
}

// fixedPasswords answers prompts from a list; the last entry repeats.
type fixedPasswords struct {
	list    []string
	prompts []string
}

func passwords(list ...string) *fixedPasswords {
	return &fixedPasswords{list: list}
}

func (p *fixedPasswords) ReadPassword(prompt string) ([]byte, error) {
	i := len(p.prompts)
	p.prompts = append(p.prompts, prompt)
	if i >= len(p.list) {
		i = len(p.list) - 1
	}
	return []byte(p.list[i]), nil
}

func newTestVault(t *testing.T, fsys FileSystem, pw PasswordProvider, workers int) (*Vault, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return New(fsys, pw, Options{Workers: workers, Log: logger.WithField("prefix", "test")}), hook
}

func warnings(hook *logtest.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}
