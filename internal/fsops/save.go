package fsops

import "os"

// Save creates or truncates the file at path and writes data verbatim.
// Parent directories are not created; the write is not atomic. New files get
// mode 0644 (less the umask); an existing file keeps its mode.
func Save(path, data string) error {
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return wrap("save", path, err)
	}
	return nil
}
