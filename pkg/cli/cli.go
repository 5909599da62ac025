package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// 画面サイズの既定値と下限
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	MinWidth      = 320
	MinHeight     = 240
)

// Config はコマンドライン引数から解析された設定を保持する
type Config struct {
	AssetDir      string        // 画像・効果音を置いたディレクトリ（空なら埋め込みのみ）
	Timeout       time.Duration // タイムアウト時間（0は無制限）
	LogLevel      string        // ログレベル（debug, info, warn, error）
	Headless      bool          // ヘッドレスモード
	Width, Height int           // ウィンドウサイズ
	Seed          uint64        // 乱数のシード（0は時刻から決める）
	TuningFile    string        // チューニング値のJSONファイル
	SoundFont     string        // BGM用のSoundFont（.sf2）
	Music         string        // BGMのMIDIファイル
	Mute          bool          // 効果音とBGMを鳴らさない
	Debug         bool          // デバッグ表示
	ShowHelp      bool          // ヘルプ表示フラグ
}

// boolFlags は値を取らないフラグ
var boolFlags = map[string]bool{
	"-h": true, "--help": true, "-help": true,
	"--headless": true, "-headless": true,
	"--mute": true, "-mute": true,
	"--debug": true, "-debug": true,
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 位置引数はアセットディレクトリとして扱う
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("balloon-pump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	config := &Config{}

	var timeoutSec int
	var seed string
	fs.IntVar(&timeoutSec, "timeout", 0, "タイムアウト時間（秒）")
	fs.IntVar(&timeoutSec, "t", 0, "タイムアウト時間（秒）（短縮形）")
	fs.StringVar(&config.LogLevel, "log-level", "info", "ログレベル（debug, info, warn, error）")
	fs.StringVar(&config.LogLevel, "l", "info", "ログレベル（短縮形）")
	fs.BoolVar(&config.Headless, "headless", false, "ヘッドレスモード")
	fs.StringVar(&config.AssetDir, "assets", "", "アセットディレクトリ")
	fs.StringVar(&config.AssetDir, "a", "", "アセットディレクトリ（短縮形）")
	fs.IntVar(&config.Width, "width", DefaultWidth, "ウィンドウの幅")
	fs.IntVar(&config.Height, "height", DefaultHeight, "ウィンドウの高さ")
	fs.StringVar(&seed, "seed", "", "乱数のシード")
	fs.StringVar(&config.TuningFile, "tuning", "", "チューニング値のJSONファイル")
	fs.StringVar(&config.SoundFont, "soundfont", "", "BGM用のSoundFont")
	fs.StringVar(&config.Music, "music", "", "BGMのMIDIファイル")
	fs.BoolVar(&config.Mute, "mute", false, "音を鳴らさない")
	fs.BoolVar(&config.Debug, "debug", false, "デバッグ表示")
	fs.BoolVar(&config.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&config.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	if !config.Headless {
		if headlessEnv := os.Getenv("HEADLESS"); headlessEnv != "" {
			config.Headless = envBool(headlessEnv)
		}
	}
	if !config.Mute {
		if muteEnv := os.Getenv("MUTE"); muteEnv != "" {
			config.Mute = envBool(muteEnv)
		}
	}

	// 環境変数からタイムアウトを取得（コマンドラインフラグが優先）
	if timeoutSec == 0 {
		if timeoutEnv := os.Getenv("TIMEOUT"); timeoutEnv != "" {
			if t, err := strconv.Atoi(timeoutEnv); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}

	// 環境変数からログレベルを取得（コマンドラインフラグが優先）
	if config.LogLevel == "info" {
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			config.LogLevel = strings.ToLower(logLevelEnv)
		}
	}

	if config.AssetDir == "" {
		config.AssetDir = os.Getenv("BALLOON_ASSETS")
	}

	if seed == "" {
		seed = os.Getenv("BALLOON_SEED")
	}
	if seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", seed, err)
		}
		config.Seed = v
	}

	// タイムアウトの検証
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	// 画面サイズの検証
	if config.Width < MinWidth || config.Height < MinHeight {
		return nil, fmt.Errorf("window size must be at least %dx%d, got %dx%d", MinWidth, MinHeight, config.Width, config.Height)
	}

	// SoundFontだけ指定してもBGMは鳴らない
	if config.SoundFont != "" && config.Music == "" {
		return nil, fmt.Errorf("--soundfont requires --music")
	}

	// 位置引数（アセットディレクトリ）
	if fs.NArg() > 0 {
		config.AssetDir = fs.Arg(0)
	}

	return config, nil
}

// envBool は環境変数の値を真偽値として解釈する
func envBool(v string) bool {
	return v == "1" || strings.ToLower(v) == "true"
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる）
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)

			// 次の引数が値である可能性をチェック
			// （-t 5 のような場合。--seed=1 のような形式は1つの引数）
			if strings.Contains(arg, "=") || boolFlags[arg] {
				continue
			}
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				i++
				flags = append(flags, args[i])
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `balloon-pump - ポンプで風船をふくらませるゲーム

Usage:
  balloon-pump [options] [asset-dir]

Arguments:
  asset-dir    画像・効果音を置いたディレクトリ（省略可）
               manifest.json があればファイル名の対応表として読み込む
               見つからない画像は自動生成、効果音は合成音で代用する

Options:
  -t, --timeout <seconds>     指定秒数後にプログラムを終了（デフォルト: 無制限）
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  --headless                  ヘッドレスモード（GUIなし、自動操作で実行）
  -a, --assets <dir>          アセットディレクトリ
  --width <px>                ウィンドウの幅（デフォルト: %d、最小: %d）
  --height <px>               ウィンドウの高さ（デフォルト: %d、最小: %d）
  --seed <n>                  乱数のシード（デフォルト: 時刻から決める）
  --tuning <file.json>        チューニング値のJSONファイル
  --soundfont <file.sf2>      BGM用のSoundFont（省略時は自動検出）
  --music <file.mid>          BGMのMIDIファイル
  --mute                      音を鳴らさない
  --debug                     デバッグ表示（F1キーでも切り替え）
  -h, --help                  このヘルプを表示

Environment Variables:
  HEADLESS=1                  ヘッドレスモードを有効化
  TIMEOUT=<seconds>           タイムアウト時間（秒）
  LOG_LEVEL=<level>           ログレベル
  BALLOON_ASSETS=<dir>        アセットディレクトリ
  BALLOON_SEED=<n>            乱数のシード
  MUTE=1                      音を鳴らさない

Examples:
  balloon-pump                         埋め込みのアセットで起動
  balloon-pump ./assets                アセットディレクトリを指定
  balloon-pump --headless --timeout 10 10秒分を自動操作で実行して結果を表示
  balloon-pump --music song.mid        BGMを再生
  balloon-pump --log-level debug       デバッグログを有効化
`, DefaultWidth, MinWidth, DefaultHeight, MinHeight)
}
