package palette

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/setanarut/drawgram/utils"
)

// CacheFile is the name of the palette file inside a palette directory.
const CacheFile = "colors.json"

// Save writes p to dir/colors.json as a JSON array of [r, g, b] triples in
// index order, creating dir when needed.
func Save(dir string, p Palette) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, CacheFile), data, 0o644)
}

// Load reads dir/colors.json.
func Load(dir string) (Palette, error) {
	data, err := os.ReadFile(filepath.Join(dir, CacheFile))
	if err != nil {
		return nil, err
	}
	var p Palette
	if err := json.Unmarshal(data, &p); err != nil {
		if errors.Is(err, ErrCorruptCache) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPalette, filepath.Join(dir, CacheFile))
	}
	return p, nil
}

// LoadOrGenerate loads the cached palette of dir. Only when the cache file is
// missing is a palette of n colours generated and saved; its contents are
// never compared against n. generated reports which path was taken. Progress
// goes to logger, or to the standard logger when it is nil.
func LoadOrGenerate(dir string, n int, swatches bool, logger *log.Logger) (p Palette, generated bool, err error) {
	if logger == nil {
		logger = log.Default()
	}
	_, statErr := os.Stat(filepath.Join(dir, CacheFile))
	if statErr == nil {
		p, err = Load(dir)
		if err != nil {
			return nil, false, err
		}
		logger.Printf("palette: loaded %d colors from %s", len(p), dir)
		return p, false, nil
	}
	if !errors.Is(statErr, os.ErrNotExist) {
		return nil, false, statErr
	}

	logger.Println("palette: cache not found, generating...")
	p = Generate(n)
	if err := Save(dir, p); err != nil {
		return nil, false, err
	}
	if swatches {
		if err := WriteSwatches(dir, p, 32); err != nil {
			return nil, true, err
		}
	}
	logger.Printf("palette: generated %d colors in %s", len(p), dir)
	return p, true, nil
}

// WriteSwatches writes one size x size PNG per entry, named
// color_<index>_<r>_<g>_<b>.png.
func WriteSwatches(dir string, p Palette, size int) error {
	if size <= 0 {
		size = 32
	}
	for i, c := range p {
		img := image.NewRGBA(image.Rect(0, 0, size, size))
		fill := c.RGBA()
		for y := range size {
			for x := range size {
				img.SetRGBA(x, y, fill)
			}
		}
		name := fmt.Sprintf("color_%04d_%d_%d_%d.png", i, c.R, c.G, c.B)
		if err := utils.SaveImage(img, filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Swatch renders p as a horizontal strip of tiles through utils.SavePalette.
func Swatch(p Palette, tileSize int, filename string) error {
	return utils.SavePalette(p.Colorful(), tileSize, filename)
}
