package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/touch-widgets/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "menu-test")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}
