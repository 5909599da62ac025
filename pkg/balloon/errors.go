package balloon

import "errors"

// バルーン関連のエラー定義
var (
	// ErrInvalidSettings はチューニング値が不正な場合のエラー
	ErrInvalidSettings = errors.New("invalid balloon settings")
)
