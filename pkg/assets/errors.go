package assets

import "errors"

// アセット関連のエラー定義
var (
	// ErrUnknownAsset はマニフェストに存在しないキーが指定された場合のエラー
	ErrUnknownAsset = errors.New("unknown asset")

	// ErrUnsupportedFormat は画像形式をデコードできない場合のエラー
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
