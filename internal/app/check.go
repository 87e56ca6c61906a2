package app

import (
	"context"
	"fmt"
	"io"

	"space-scroll/internal/assets"
	"space-scroll/internal/config"
	"space-scroll/internal/logger"
)

// AssetReport is the result of decoding one configured asset.
type AssetReport struct {
	Name          string
	Path          string
	Width, Height int
	Err           error
}

// assetNames lists the configured assets in the order the scene requests them.
func assetNames(cfg config.AssetsConfig) []string {
	names := []string{cfg.Panorama}
	names = append(names, cfg.CubeFaces[:]...)
	return append(names, cfg.Avatar, cfg.Moon, cfg.MoonNormal)
}

// CheckAssets decodes every configured asset synchronously, the same way the scene loads them.
// A nil decode uses assets.Decode.
func CheckAssets(cfg config.Config, decode assets.DecodeFunc) []AssetReport {
	ld := assets.NewLoader(context.Background(), assets.Options{
		Dir:            cfg.Assets.Dir,
		MaxTextureSize: cfg.Assets.MaxTextureSize,
		Decode:         decode,
	}, assets.NewQueue(), logger.New(""))

	var out []AssetReport
	for _, name := range assetNames(cfg.Assets) {
		r := AssetReport{Name: name, Path: ld.Path(name)}
		img, err := ld.DecodeNow(name)
		if err != nil {
			r.Err = err
		} else {
			b := img.Bounds()
			r.Width, r.Height = b.Dx(), b.Dy()
		}
		out = append(out, r)
	}
	return out
}

// WriteReports prints one line per report and returns an error when any asset failed.
func WriteReports(w io.Writer, reports []AssetReport) error {
	failed := 0
	for _, r := range reports {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %-24s %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(w, "OK   %-24s %dx%d\n", r.Name, r.Width, r.Height)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed to decode", failed, len(reports))
	}
	return nil
}
