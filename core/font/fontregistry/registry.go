/*
Package fontregistry manages a registry for loaded fonts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontmetrics.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontmetrics.fonts")
}

// Registry holds fonts and typecases which have already been loaded.
// It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts and
// typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

func NewRegistry() *Registry {
	return &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
	}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font is stored using Key(name). If this key is
// already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(name string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	key := Key(name)
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts[key]; !ok {
		tracer().Debugf("registry stores font %s as %s", f.Fontname, key)
		fr.fonts[key] = f
	}
}

// Font returns the font stored under name, if any.
func (fr *Registry) Font(name string) (*font.ScalableFont, bool) {
	fr.Lock()
	defer fr.Unlock()
	f, ok := fr.fonts[Key(name)]
	return f, ok
}

// TypeCase returns a typecase for a font at a given point size. Typecases are
// cached, i.e. asking twice for the same font and size returns the same typecase.
// The font has to be stored in the registry beforehand.
func (fr *Registry) TypeCase(name string, size float64) (*font.TypeCase, error) {
	key := Key(name)
	tname := appendSize(key, size)
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.typecases[tname]; ok {
		tracer().Debugf("registry found typecase %s", tname)
		return t, nil
	}
	f, ok := fr.fonts[key]
	if !ok {
		tracer().Infof("registry does not contain font %s", key)
		return nil, core.Error(core.EMISSING, "font %s not found in registry", name)
	}
	t, err := f.PrepareCase(size)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("font registry caches %s", tname)
	fr.typecases[tname] = t
	return t, nil
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
}

// Key returns the registry key for a font name. Font file paths are keyed by
// their cleaned path, names of installed fonts case-insensitively.
func Key(name string) string {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, `/\`) {
		return filepath.Clean(filepath.FromSlash(name))
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func appendSize(fname string, size float64) string {
	return fmt.Sprintf("%s-%.2f", fname, size)
}
