package resources

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontmetrics/core"
	"github.com/npillmayer/fontmetrics/core/font"
	"github.com/npillmayer/fontmetrics/core/font/fontregistry"
)

// FallbackName is the font name resolving to the built-in fallback font.
const FallbackName = "fallback"

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

type fontPlusErr struct {
	font *font.ScalableFont
	err  error
}

// FontPromise is returned by ResolveFont. Calling Font blocks until loading has
// completed.
type FontPromise interface {
	Font() (*font.ScalableFont, error)
	Await(ctx context.Context) (*font.ScalableFont, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.ScalableFont, error)
}

// fontResult holds the result of loading once it has been received, so that
// a promise may be awaited more than once.
type fontResult struct {
	sync.Mutex
	done bool
	fontPlusErr
}

func (loader fontLoader) Font() (*font.ScalableFont, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.ScalableFont, error) {
	return loader.await(ctx)
}

// ResolveFont resolves a font by name. name is either
//
//   - "fallback", denoting the built-in Go Sans font,
//   - the path of a TTF or OTF file, or
//   - the name of a font installed on the system, like "Arial" or "DejaVuSans.ttf".
//
// Fonts are cached in the global font registry under name.
func ResolveFont(name string) FontPromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		if f, ok := fontregistry.GlobalRegistry().Font(name); ok {
			tracer().Debugf("font %s found in registry", name)
			ch <- fontPlusErr{font: f}
			return
		}
		r := loadFont(name)
		if r.err == nil {
			fontregistry.GlobalRegistry().StoreFont(name, r.font)
		}
		ch <- r
	}(ch)
	result := &fontResult{}
	return fontLoader{
		await: func(ctx context.Context) (*font.ScalableFont, error) {
			result.Lock()
			defer result.Unlock()
			if result.done {
				return result.font, result.err
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				result.fontPlusErr, result.done = r, true
				return r.font, r.err
			}
		},
	}
}

func loadFont(name string) (result fontPlusErr) {
	name = strings.TrimSpace(name)
	if name == "" {
		result.err = core.Error(core.EINVALID, "no font name given")
		return
	}
	if strings.EqualFold(name, FallbackName) {
		tracer().Debugf("using fallback font")
		result.font = font.FallbackFont()
		return
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("loading font from file %s", name)
		result.font, result.err = font.LoadOpenTypeFont(name)
		return
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil || fpath == "" {
		tracer().Infof("%s is neither a font file nor a system font", name)
		result.err = NotFound(name)
		return
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	result.font, result.err = font.LoadOpenTypeFont(fpath)
	return
}
