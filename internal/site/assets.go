package site

import (
	_ "embed"
	"os"
	"path"
	"path/filepath"

	"careers-engine/internal/config"
	"careers-engine/internal/logging"
)

//go:embed assets/careers.css
var defaultStylesheet []byte

const defaultStylesheetName = "careers.css"

// asset is a local file shipped next to the pages.
type asset struct {
	src  string // local source, empty for the embedded stylesheet
	name string // file name under the pages dir
	href string
}

// stylesheet resolves output.stylesheet. A missing file falls back to the
// embedded default so pages never reference a stylesheet that was not written.
func stylesheet(cfg config.Config, log *logging.Logger) asset {
	src := cfg.Output.Stylesheet
	name := defaultStylesheetName
	if src != "" {
		name = filepath.Base(src)
		if fileExists(src) {
			return asset{src: src, name: name, href: cfg.Output.PagesPath + name}
		}
		log.Warn("stylesheet not found; writing built-in default", "path", src)
	}
	return asset{name: name, href: cfg.Output.PagesPath + name}
}

// logo resolves output.logo. Without a local file the header uses the
// company logo URL and nothing is copied.
func logo(cfg config.Config, log *logging.Logger) (asset, bool) {
	src := cfg.Output.Logo
	if src == "" {
		return asset{href: cfg.Company.Logo}, false
	}
	if !fileExists(src) {
		log.Warn("logo not found; using company logo url", "path", src, "url", cfg.Company.Logo)
		return asset{href: cfg.Company.Logo}, false
	}
	name := filepath.Base(src)
	return asset{src: src, name: name, href: cfg.Output.PagesPath + name}, true
}

func writeStylesheet(w *Writer, dir string, a asset) error {
	rel := path.Join(dir, a.name)
	if a.src == "" {
		return w.Write(rel, defaultStylesheet)
	}
	return w.CopyFile(rel, a.src)
}

// writeLogo copies the logo unless it already sits at its destination.
func writeLogo(w *Writer, dir string, a asset) error {
	rel := path.Join(dir, a.name)
	if sameFile(a.src, filepath.Join(w.root, filepath.FromSlash(rel))) {
		w.track(rel)
		return nil
	}
	return w.CopyFile(rel, a.src)
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
