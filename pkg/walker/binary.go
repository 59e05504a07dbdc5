package walker

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// probeSize is how much of a file the content probe reads.
const probeSize = 8 * 1024

// binaryExtensions are skipped without opening the file: images, audio/video,
// archives, executables and compiled objects, fonts, binary document formats,
// and database files.
var binaryExtensions = map[string]bool{
	// Images
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true, ".ico": true, ".psd": true,

	// Audio / video
	".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true,
	".m4a": true, ".mp4": true, ".avi": true, ".mov": true, ".mkv": true,
	".webm": true, ".wmv": true,

	// Archives
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".rar": true, ".7z": true, ".dmg": true, ".iso": true, ".deb": true,
	".rpm": true, ".msi": true,

	// Executables, libraries, compiled objects
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".lib": true, ".o": true, ".obj": true, ".bin": true, ".class": true,
	".jar": true, ".war": true, ".pyc": true, ".pyo": true, ".wasm": true,

	// Binary document formats
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".odt": true, ".ods": true,

	// Fonts
	".ttf": true, ".otf": true, ".woff": true, ".woff2": true, ".eot": true,

	// Databases
	".db": true, ".sqlite": true, ".sqlite3": true, ".mdb": true,
}

// LooksBinary reports whether a file should be treated as binary and skipped.
// The extension denylist is checked first; otherwise the first 8 KiB is
// probed. Files that cannot be opened are treated as binary so the caller
// never reads them.
func LooksBinary(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if binaryExtensions[ext] {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}

	return probeLooksBinary(buf[:n])
}

// probeLooksBinary classifies raw content. A null byte is a definitive binary
// marker; beyond that, a high proportion of control characters outside the
// usual text set marks the content as binary.
func probeLooksBinary(b []byte) bool {
	if len(b) == 0 {
		return false
	}

	control := 0
	for _, c := range b {
		if c == 0x00 {
			return true
		}
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
			control++
		}
	}

	return float64(control)/float64(len(b)) > 0.3
}
