package services

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/kamal-hamza/tokenlint/internal/adapters/repository"
	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/pkg/layout"
)

const (
	usdt  = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
	weth  = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
	other = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
)

// testRegistry is an in-memory registry checkout rooted at /repo
type testRegistry struct {
	t      *testing.T
	fs     afero.Fs
	layout *layout.Layout
	tree   *repository.FileAssetTree
}

func newTestRegistry(t *testing.T) *testRegistry {
	t.Helper()
	fs := afero.NewMemMapFs()
	l := &layout.Layout{
		RootPath:     "/repo",
		RootLabel:    layout.DefaultRootLabel,
		AssetsLabel:  layout.DefaultAssetsLabel,
		LogoFilename: layout.DefaultLogoFilename,
		InfoFilename: layout.DefaultInfoFilename,
	}
	return &testRegistry{t: t, fs: fs, layout: l, tree: repository.NewFileAssetTree(fs, l)}
}

func (r *testRegistry) mkdir(chain, token string) {
	r.t.Helper()
	if err := r.fs.MkdirAll(r.layout.TokenPath(chain, token), 0755); err != nil {
		r.t.Fatalf("failed to create folder: %v", err)
	}
}

func (r *testRegistry) write(chain, token, name string, data []byte) {
	r.t.Helper()
	r.mkdir(chain, token)
	path := r.layout.TokenPath(chain, token) + "/" + name
	if err := afero.WriteFile(r.fs, path, data, 0644); err != nil {
		r.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// strayFile puts a loose file directly in a chain's assets directory
func (r *testRegistry) strayFile(chain, name string) {
	r.t.Helper()
	if err := r.fs.MkdirAll(r.layout.AssetsPath(chain), 0755); err != nil {
		r.t.Fatalf("failed to create assets dir: %v", err)
	}
	if err := afero.WriteFile(r.fs, r.layout.TokenPath(chain, name), []byte("loose"), 0644); err != nil {
		r.t.Fatalf("failed to write stray file: %v", err)
	}
}

// validToken writes a folder that passes every check
func (r *testRegistry) validToken(chain, token, symbol string) {
	r.t.Helper()
	r.write(chain, token, "logo.png", pngBytes(r.t, 256, 256))
	r.write(chain, token, "info.json", infoJSON(r.t, token, symbol, nil))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// forgedPNG carries a valid IHDR declaring w x h RGBA pixels and almost no
// image data behind it.
func forgedPNG(w, h uint32) []byte {
	chunk := func(typ string, data []byte) []byte {
		var b bytes.Buffer
		binary.Write(&b, binary.BigEndian, uint32(len(data)))
		b.WriteString(typ)
		b.Write(data)
		crc := crc32.NewIEEE()
		crc.Write([]byte(typ))
		crc.Write(data)
		binary.Write(&b, binary.BigEndian, crc.Sum32())
		return b.Bytes()
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8
	ihdr[9] = 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	buf.Write(chunk("IHDR", ihdr))
	buf.Write(chunk("IDAT", []byte{0x78, 0x9c, 0x03, 0x00, 0x00, 0x00, 0x00, 0x01}))
	buf.Write(chunk("IEND", nil))
	return buf.Bytes()
}

// dirAt replaces a required file with a directory of the same name
func (r *testRegistry) dirAt(chain, token, name string) {
	r.t.Helper()
	path := r.layout.TokenPath(chain, token) + "/" + name
	if err := r.fs.RemoveAll(path); err != nil {
		r.t.Fatalf("failed to remove %s: %v", path, err)
	}
	if err := r.fs.MkdirAll(path, 0755); err != nil {
		r.t.Fatalf("failed to create %s: %v", path, err)
	}
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

// infoJSON builds an info.json body. Overrides replace fields; a nil override
// value removes the field.
func infoJSON(t *testing.T, id, symbol string, overrides map[string]any) []byte {
	t.Helper()
	fields := map[string]any{
		"name":        symbol + " Token",
		"type":        "ERC20",
		"symbol":      symbol,
		"decimals":    18,
		"description": "A test token",
		"website":     "https://example.org",
		"explorer":    "https://etherscan.io/token/" + id,
		"id":          id,
		"status":      "active",
	}
	for k, v := range overrides {
		if v == nil {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	data, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("failed to marshal info.json: %v", err)
	}
	return data
}

func key(chain, token string) domain.FolderKey {
	return domain.FolderKey{Chain: chain, Token: token}
}
