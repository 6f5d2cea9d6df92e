package generation

import (
	"os"
	"syscall"
)

// fileLock serializes writers of the generation metadata. Watch-mode
// regeneration and a manually invoked generate can otherwise race on
// the same file.
type fileLock struct {
	path string
	file *os.File
}

func lockPath(dir string) string {
	return Path(dir) + ".lock"
}

// acquire takes an exclusive flock on the metadata lock file, blocking
// until it is available.
func acquire(dir string) (*fileLock, error) {
	if err := os.MkdirAll(metaDir(dir), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(lockPath(dir), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}
	return &fileLock{path: lockPath(dir), file: f}, nil
}

func (l *fileLock) release() {
	if l.file == nil {
		return
	}
	syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	l.file.Close()
	os.Remove(l.path)
	l.file = nil
}
