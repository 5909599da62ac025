package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/zurustar/balloon-pump/pkg/assets"
	"github.com/zurustar/balloon-pump/pkg/audio"
	"github.com/zurustar/balloon-pump/pkg/balloon"
	"github.com/zurustar/balloon-pump/pkg/cli"
	"github.com/zurustar/balloon-pump/pkg/fileutil"
	"github.com/zurustar/balloon-pump/pkg/logger"
	"github.com/zurustar/balloon-pump/pkg/scene"
	"github.com/zurustar/balloon-pump/pkg/window"
)

// WindowTitle はウィンドウのタイトル
const WindowTitle = "Balloon Pump"

// DefaultHeadlessDuration はタイムアウト未指定のヘッドレス実行で進める時間
const DefaultHeadlessDuration = 10 * time.Second

// embeddedAssetDir は埋め込みファイルシステム内のアセットディレクトリ
const embeddedAssetDir = "assets"

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config  *cli.Config
	log     *slog.Logger
	embedFS fs.FS
	stdout  io.Writer

	assetFS  fileutil.FileSystem
	loader   *assets.Loader
	library  *assets.Library
	settings balloon.Settings
	seed     uint64

	sounds *audio.SoundBoard
	music  *audio.MusicPlayer
	scene  *scene.Scene
}

// New Applicationを作成
func New(embedFS fs.FS) *Application {
	return &Application{
		embedFS: embedFS,
		stdout:  os.Stdout,
	}
}

// SetOutput はヘルプとヘッドレス実行のレポートの出力先を変更する
func (app *Application) SetOutput(w io.Writer) {
	app.stdout = w
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started", "headless", app.config.Headless)

	// 3. アセットの読み込み元を決める
	if err := app.openAssets(); err != nil {
		return fmt.Errorf("failed to open assets: %w", err)
	}

	// 4. チューニング値の読み込み
	if err := app.loadSettings(); err != nil {
		return fmt.Errorf("failed to load tuning: %w", err)
	}

	// 5. 画像の読み込み（見つからないものは生成する）
	if err := app.loadLibrary(); err != nil {
		return fmt.Errorf("failed to load assets: %w", err)
	}

	// 6. 音の準備（ヘッドレスでは再生回数だけ数える）
	app.initAudio()

	// 7. シーンの作成
	app.buildScene()

	// 8. 実行
	if app.config.Headless {
		if err := app.runHeadless(); err != nil {
			return fmt.Errorf("failed to run headless: %w", err)
		}
	} else {
		if err := app.runWindow(); err != nil {
			return fmt.Errorf("failed to run window: %w", err)
		}
	}

	app.shutdown()
	app.log.Info("Application terminated normally")
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// openAssets はユーザー指定のディレクトリを埋め込みアセットの上に重ねる
func (app *Application) openAssets() error {
	var user fileutil.FileSystem
	if dir := app.config.AssetDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("asset directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("asset directory: %s is not a directory", dir)
		}
		user = fileutil.NewRealFS(dir)
	}

	var builtin fileutil.FileSystem
	if app.embedFS != nil {
		builtin = fileutil.NewEmbedFS(app.embedFS, embeddedAssetDir)
	}

	app.assetFS = fileutil.NewLayered(user, builtin)
	app.log.Info("Asset file systems", "layers", app.assetFS.String())
	return nil
}

// loadSettings はチューニングファイルを読み込む（未指定なら既定値）
func (app *Application) loadSettings() error {
	app.settings = balloon.DefaultSettings()
	if app.config.TuningFile == "" {
		return nil
	}
	f, err := os.Open(app.config.TuningFile)
	if err != nil {
		return err
	}
	defer f.Close()

	settings, err := balloon.LoadSettings(f)
	if err != nil {
		return fmt.Errorf("%s: %w", app.config.TuningFile, err)
	}
	app.settings = settings
	app.log.Info("Tuning loaded", "file", app.config.TuningFile)
	return nil
}

// loadLibrary はマニフェストに従って画像を読み込む
func (app *Application) loadLibrary() error {
	manifest, err := assets.LoadManifest(app.assetFS)
	if err != nil {
		return err
	}
	app.loader = assets.NewLoader(app.assetFS, manifest)

	lib, err := assets.LoadLibrary(app.loader)
	if err != nil {
		return err
	}
	app.library = lib
	app.log.Info("Assets loaded",
		"images", lib.Len(),
		"from_file", lib.Count(assets.FromFile),
		"generated", lib.Count(assets.Generated))
	return nil
}

// initAudio は効果音とBGMを準備する
// ヘッドレスではオーディオコンテキストを作らず、再生回数だけを数える
// 失敗しても音なしで続行する
func (app *Application) initAudio() {
	if app.config.Headless {
		app.log.Debug("Headless mode: audio output disabled")
		app.sounds = audio.NewSoundBoard(nil)
		app.sounds.LoadClips(app.loader)
		return
	}

	ctx := ebaudio.NewContext(audio.SampleRate)
	app.sounds = audio.NewSoundBoard(ctx)
	app.sounds.LoadClips(app.loader)
	app.sounds.SetMuted(app.config.Mute)

	if app.config.Music == "" {
		return
	}
	player, err := app.loadMusic(ctx)
	if err != nil {
		app.log.Warn("Background music disabled", "error", err)
		return
	}
	player.SetMuted(app.config.Mute)
	app.music = player
	app.log.Info("Background music started", "file", app.config.Music)
}

// loadMusic はSoundFontを探してBGMを再生する
func (app *Application) loadMusic(ctx *ebaudio.Context) (*audio.MusicPlayer, error) {
	var sf *SoundFontLocation
	if app.config.SoundFont != "" {
		sf = &SoundFontLocation{Path: app.config.SoundFont}
	} else {
		sf = findSoundFont(app.embedFS, app.config.AssetDir)
	}
	if sf == nil {
		return nil, fmt.Errorf("%w: %s", audio.ErrSoundFontNotFound, DefaultSoundFontName)
	}
	app.log.Debug("SoundFont found", "path", sf.Path, "embedded", sf.IsEmbedded)

	song := audio.Location{Path: app.config.Music}
	if _, err := os.Stat(app.config.Music); errors.Is(err, fs.ErrNotExist) {
		// 実ファイルになければアセットから探す
		song.FS = app.assetFS
	}
	return audio.LoadMusic(sf.Location(), song, ctx)
}

// buildScene はシーンを作成する
func (app *Application) buildScene() {
	app.seed = app.config.Seed
	if app.seed == 0 {
		app.seed = uint64(time.Now().UnixNano())
	}

	opts := scene.Options{
		Width:    app.config.Width,
		Height:   app.config.Height,
		Settings: app.settings,
		Seed:     app.seed,
		Debug:    app.config.Debug,
	}
	if app.sounds != nil {
		opts.Sounds = app.sounds
	}
	app.scene = scene.New(app.library, opts)
}

// runWindow はウィンドウを開いてゲームを実行する
func (app *Application) runWindow() error {
	return window.Run(app.scene, app.scene, window.Options{
		Width:   app.config.Width,
		Height:  app.config.Height,
		Title:   WindowTitle,
		Timeout: app.config.Timeout,
	})
}

// runHeadless は自動操作でシーンを進め、結果を表示する
func (app *Application) runHeadless() error {
	duration := app.config.Timeout
	if duration <= 0 {
		duration = DefaultHeadlessDuration
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pilot := scene.NewAutopilot(app.scene, app.seed)
	frames, err := window.RunHeadless(ctx, pilot, window.FramesFor(duration))
	if err != nil {
		return err
	}
	app.log.Info("Headless run finished", "frames", frames)

	fmt.Fprintln(app.stdout, RenderReport(Report{
		Seed:       app.seed,
		Stats:      app.scene.Stats(),
		FromFile:   app.library.Count(assets.FromFile),
		Generated:  app.library.Count(assets.Generated),
		PopSounds:  app.sounds.Plays(audio.ClipPop),
		PumpSounds: app.sounds.Plays(audio.ClipPump),
	}))
	return nil
}

// shutdown は音を止める
func (app *Application) shutdown() {
	if app.music != nil {
		app.music.Stop()
	}
	if app.sounds != nil {
		app.sounds.StopAll()
	}
}
