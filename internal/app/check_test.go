package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"space-scroll/internal/config"
)

func TestCheckAssetsReportsEveryAsset(t *testing.T) {
	cfg := config.Default()
	cfg.Assets.Dir = "testdir"
	reports := CheckAssets(cfg, decodeExcept("moon.jpg"))

	if len(reports) != 10 {
		t.Fatalf("reports = %d, want 10", len(reports))
	}
	if reports[0].Name != cfg.Assets.Panorama {
		t.Errorf("first report = %q, want the panorama", reports[0].Name)
	}
	for _, r := range reports {
		if r.Path != filepath.Join("testdir", r.Name) {
			t.Errorf("%s: path = %q", r.Name, r.Path)
		}
		if r.Name == "moon.jpg" {
			if !errors.Is(r.Err, os.ErrNotExist) {
				t.Errorf("moon.jpg err = %v", r.Err)
			}
			continue
		}
		if r.Err != nil || r.Width != 4 || r.Height != 4 {
			t.Errorf("%s: %+v", r.Name, r)
		}
	}
}

func TestWriteReports(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReports(&buf, []AssetReport{
		{Name: "a.png", Width: 2, Height: 3},
		{Name: "b.png", Err: errors.New("boom")},
	})
	if err == nil || !strings.Contains(err.Error(), "1 of 2") {
		t.Errorf("err = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "OK   a.png") || !strings.Contains(out, "2x3") {
		t.Errorf("missing OK line:\n%s", out)
	}
	if !strings.Contains(out, "FAIL b.png") || !strings.Contains(out, "boom") {
		t.Errorf("missing FAIL line:\n%s", out)
	}

	buf.Reset()
	if err := WriteReports(&buf, []AssetReport{{Name: "a.png"}}); err != nil {
		t.Errorf("all ok: err = %v", err)
	}
}
