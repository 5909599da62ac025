package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNGデコーダの登録
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp" // BMPデコーダの登録

	"github.com/zurustar/balloon-pump/pkg/artgen"
	"github.com/zurustar/balloon-pump/pkg/fileutil"
	"github.com/zurustar/balloon-pump/pkg/logger"
)

// Source は画像の出どころ
type Source int

const (
	// FromFile はファイルからデコードした画像
	FromFile Source = iota
	// Generated は手続き的に生成した画像
	Generated
)

// String はSourceの名前を返す
func (s Source) String() string {
	if s == FromFile {
		return "file"
	}
	return "generated"
}

// BackgroundSize は生成する背景画像の大きさ（表示時に画面サイズへ引き伸ばす）
var BackgroundSize = image.Pt(1024, 768)

// Loader はマニフェストに従って画像を読み込む
type Loader struct {
	fsys     fileutil.FileSystem
	manifest Manifest
	log      *slog.Logger
}

// NewLoader はLoaderを作成する
func NewLoader(fsys fileutil.FileSystem, manifest Manifest) *Loader {
	return &Loader{
		fsys:     fsys,
		manifest: manifest,
		log:      logger.Component("assets"),
	}
}

// Manifest は使用中の対応表を返す
func (l *Loader) Manifest() Manifest {
	return l.manifest
}

// Load はキーに対応する画像を返す
// ファイルがない、またはデコードできない場合は生成した画像で代用する
func (l *Loader) Load(key string) (image.Image, Source, error) {
	name, ok := l.manifest.Images[key]
	if !ok {
		return nil, Generated, fmt.Errorf("%w: %q", ErrUnknownAsset, key)
	}

	img, err := l.decodeFile(name)
	if err == nil {
		return img, FromFile, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug("Asset file not found, generating", "key", key, "file", name)
	} else {
		l.log.Warn("Asset file unusable, generating", "key", key, "file", name, "error", err)
	}

	img, err = Generate(key)
	if err != nil {
		return nil, Generated, err
	}
	return img, Generated, nil
}

// decodeFile はファイルを読み込んでPNGまたはBMPとしてデコードする
func (l *Loader) decodeFile(name string) (image.Image, error) {
	if l.fsys == nil {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, name)
	}
	data, err := l.fsys.ReadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, name, err)
	}
	return img, nil
}

// LoadSound は効果音ファイルの内容を返す
// ファイルがない場合はfs.ErrNotExistをラップしたエラーを返す
func (l *Loader) LoadSound(name string) ([]byte, error) {
	file, ok := l.manifest.Sounds[name]
	if !ok {
		return nil, fmt.Errorf("%w: sound %q", ErrUnknownAsset, name)
	}
	if l.fsys == nil {
		return nil, fmt.Errorf("%w: %s", fs.ErrNotExist, file)
	}
	return l.fsys.ReadFile(file)
}

// Generate はキーに対応する画像を手続き的に生成する
func Generate(key string) (image.Image, error) {
	switch key {
	case KeyBackground:
		return artgen.Background(BackgroundSize.X, BackgroundSize.Y), nil
	case KeyParticle:
		return artgen.Star(), nil
	case KeyRope:
		return artgen.Rope(), nil
	case KeyPumpHandle:
		return artgen.PumpHandle(), nil
	case KeyPumpBody:
		return artgen.PumpBody(), nil
	case KeyOutlet:
		return artgen.Outlet(), nil
	case KeyCloud:
		return artgen.Cloud(), nil
	}
	if n, ok := indexedKey(key, "balloon", BalloonSkins); ok {
		return artgen.Balloon(n), nil
	}
	if n, ok := indexedKey(key, "letter", Letters); ok {
		return artgen.Letter(n)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, key)
}

// indexedKey は "balloon3" のようなキーから番号を取り出す
func indexedKey(key, prefix string, max int) (int, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || n > max {
		return 0, false
	}
	return n, true
}
