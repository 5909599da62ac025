package balloon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Duration はJSONで "200ms" のような文字列として読み書きできるtime.Duration
type Duration time.Duration

// MarshalJSON はDurationを文字列として出力する
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON は "200ms" 形式の文字列、またはミリ秒の数値を受け付ける
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %s", string(data))
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// Settings はバルーンの動きに関するチューニング値
// 状態遷移の閾値（MaxClicks）とスケール式は定数で固定し、ここには含めない
type Settings struct {
	InflateDuration      Duration `json:"inflateDuration"`      // 1回分の膨張アニメーション時間
	LaunchVelocityY      float64  `json:"launchVelocityY"`      // 発射時の縦速度（上向きが負）
	DirectionChangeDelay Duration `json:"directionChangeDelay"` // 発射から方向転換までの時間
	DirectionSpread      int      `json:"directionSpread"`      // 方向転換時の横速度の幅（±）
	DriftX               int      `json:"driftX"`               // 毎フレームの横速度揺らぎ（±）
	DriftY               int      `json:"driftY"`               // 毎フレームの縦速度揺らぎ（±）
	RopeOffsetY          float64  `json:"ropeOffsetY"`          // ロープの取り付け位置（本体中心からの下方向オフセット）
	RopeScale            float64  `json:"ropeScale"`            // ロープのスケール
	LetterInitialScale   float64  `json:"letterInitialScale"`   // 生成直後の文字のスケール
}

// DefaultSettings は既定のチューニング値を返す
func DefaultSettings() Settings {
	return Settings{
		InflateDuration:      Duration(200 * time.Millisecond),
		LaunchVelocityY:      -100,
		DirectionChangeDelay: Duration(2000 * time.Millisecond),
		DirectionSpread:      50,
		DriftX:               10,
		DriftY:               5,
		RopeOffsetY:          16,
		RopeScale:            0.4,
		LetterInitialScale:   0.02,
	}
}

// Validate はチューニング値を検証する
func (s Settings) Validate() error {
	if s.InflateDuration <= 0 {
		return fmt.Errorf("%w: inflateDuration must be positive, got %s", ErrInvalidSettings, time.Duration(s.InflateDuration))
	}
	if s.DirectionChangeDelay <= 0 {
		return fmt.Errorf("%w: directionChangeDelay must be positive, got %s", ErrInvalidSettings, time.Duration(s.DirectionChangeDelay))
	}
	if s.DirectionSpread < 0 || s.DriftX < 0 || s.DriftY < 0 {
		return fmt.Errorf("%w: random ranges must be non-negative", ErrInvalidSettings)
	}
	if s.RopeScale <= 0 || s.LetterInitialScale <= 0 {
		return fmt.Errorf("%w: scales must be positive", ErrInvalidSettings)
	}
	return nil
}

// LoadSettings はJSONからチューニング値を読み込む
// 省略された項目は既定値のまま、未知のキーはエラーにする
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	data, err := io.ReadAll(r)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}
