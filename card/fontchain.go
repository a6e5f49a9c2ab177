package card

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/printworks/cardpress/config"
	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/geom"
)

// FaceSource resolves one font face. Sources form a chain: a source that
// fails defers to the next one.
type FaceSource interface {
	// Name identifies the source in warnings.
	Name() string
	// Face loads a face at the given size in points.
	Face(size geom.Points) (font.Face, error)
}

// Resolver finds a usable face for card text by walking its sources in
// order. The chain always ends in a source that cannot fail.
type Resolver struct {
	sources []FaceSource
}

// NewResolver builds the resolution chain for cfg: the configured font
// file (looked up relative to fontDir, then in the platform font
// directory with narrow-sans aliases), the bundled Go Regular face, and
// the engine builtin. fontDir is typically the input file's directory
// and may be empty.
func NewResolver(cfg config.Config, fontDir string) *Resolver {
	var sources []FaceSource
	if cfg.FontPath != "" {
		sources = append(sources, fileSource{
			name:       cfg.FontPath,
			candidates: fontCandidates(cfg.FontPath, fontDir),
		})
	}
	sources = append(sources, bundledSource{}, builtinSource{})
	return &Resolver{sources: sources}
}

// Sources returns a resolver over exactly the given sources, ending with
// the engine builtin as the unfailing tail.
func Sources(sources ...FaceSource) *Resolver {
	return &Resolver{sources: append(sources, builtinSource{})}
}

// Resolve returns the first face that loads, with one warning for every
// source that was skipped.
func (r *Resolver) Resolve(size geom.Points) (font.Face, []diag.Warning) {
	var warnings []diag.Warning
	for _, src := range r.sources {
		face, err := src.Face(size)
		if err != nil {
			warnings = append(warnings, diag.Warningf(diag.CodeFont, "%s unavailable: %v", src.Name(), err))
			continue
		}
		return face, warnings
	}
	// The builtin tail never fails; this covers a hand-built empty chain.
	return basicfont.Face7x13, warnings
}

// fontCandidates lists the paths probed for a configured font file, in
// order. An absolute path is taken as-is. A relative one is anchored at
// fontDir, then looked up by base name in the platform font directory;
// a narrow-sans family name additionally tries its well-known file
// aliases there.
func fontCandidates(fontPath, fontDir string) []string {
	if filepath.IsAbs(fontPath) {
		return []string{fontPath}
	}

	candidates := []string{fontPath}
	if fontDir != "" {
		candidates = []string{filepath.Join(fontDir, fontPath)}
	}

	if windir := os.Getenv("WINDIR"); windir != "" {
		fonts := filepath.Join(windir, "Fonts")
		base := filepath.Base(fontPath)
		candidates = append(candidates, filepath.Join(fonts, base))

		stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
		if stem == "arialnarrow" || stem == "arial narrow" {
			candidates = append(candidates,
				filepath.Join(fonts, "ARIALN.TTF"),
				filepath.Join(fonts, "arialn.ttf"),
				filepath.Join(fonts, "arial.ttf"),
			)
		}
	}
	return candidates
}

// newFace parses TrueType or OpenType data at the card resolution.
func newFace(data []byte, size geom.Points) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     geom.DPI,
		Hinting: font.HintingFull,
	})
}

// fileSource loads the configured font from the first readable candidate
// path.
type fileSource struct {
	name       string
	candidates []string
}

func (s fileSource) Name() string { return fmt.Sprintf("font %q", s.name) }

func (s fileSource) Face(size geom.Points) (font.Face, error) {
	var parseErr error
	for _, p := range s.candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		face, err := newFace(data, size)
		if err != nil {
			parseErr = fmt.Errorf("%s: %w", filepath.Base(p), err)
			continue
		}
		return face, nil
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return nil, errors.New("no font file found")
}

// bundledSource is the Go Regular face compiled into the binary. It
// covers Latin and Cyrillic, so names stay readable without any font
// installed.
type bundledSource struct{}

func (bundledSource) Name() string { return "bundled Go Regular" }

func (bundledSource) Face(size geom.Points) (font.Face, error) {
	return newFace(goregular.TTF, size)
}

// builtinSource is the fixed-size engine face. It cannot fail but only
// carries basic glyphs, so Cyrillic text degrades to blanks.
type builtinSource struct{}

func (builtinSource) Name() string { return "builtin fixed face" }

func (builtinSource) Face(geom.Points) (font.Face, error) {
	return basicfont.Face7x13, nil
}
