// Package window はEbitengineのゲームループとシーンをつなぐ
package window

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/zurustar/balloon-pump/pkg/logger"
)

// TPS は1秒あたりの更新回数
const TPS = 60

// FrameDuration は1回の更新で進める時間
const FrameDuration = time.Second / TPS

// 論理画面の最小サイズ
const (
	MinWidth  = 320
	MinHeight = 240
)

// Scene はウィンドウに表示するシーン
type Scene interface {
	Update(dt time.Duration) error
	Draw(screen *ebiten.Image)
	// Resize はビューポートのサイズが変わったときに呼ばれる
	Resize(width, height int)
}

// PointerSink はポインタ操作の受け口
type PointerSink interface {
	PointerDown(x, y float64)
	PointerUp(x, y float64)
}

// DebugToggler はデバッグ表示を切り替えられるシーン
type DebugToggler interface {
	SetDebug(enabled bool)
	IsDebug() bool
}

// Simulation はヘッドレス実行で進めるもの
type Simulation interface {
	Update(dt time.Duration) error
}

// PointerKind はポインタイベントの種類
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerUp
)

// PointerEvent は1フレームに集めたポインタイベント
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// Options はウィンドウの設定
type Options struct {
	Width, Height int
	Title         string
	Timeout       time.Duration // 0の場合は無制限
}

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	scene     Scene
	sink      PointerSink
	timeout   time.Duration
	startTime time.Time
	now       func() time.Time
	log       *slog.Logger

	width, height int
	frames        int
}

// NewGame はGameを作成する
// sinkがnilの場合、ポインタ操作は捨てる
func NewGame(scene Scene, sink PointerSink, opts Options) *Game {
	g := &Game{
		scene:   scene,
		sink:    sink,
		timeout: opts.Timeout,
		now:     time.Now,
		log:     logger.Component("window"),
		width:   opts.Width,
		height:  opts.Height,
	}
	g.startTime = g.now()
	return g
}

// Frames は更新済みのフレーム数を返す
func (g *Game) Frames() int {
	return g.frames
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
// 入力をシーンに渡してからシーンを1フレーム進める
func (g *Game) Update() error {
	if g.timedOut() {
		g.log.Info("Timeout reached", "timeout", g.timeout)
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.toggleDebug()
	}

	g.dispatch(collectPointerEvents())

	if err := g.scene.Update(FrameDuration); err != nil {
		return err
	}
	g.frames++
	return nil
}

// timedOut はタイムアウトに達したかどうかを返す
func (g *Game) timedOut() bool {
	return g.timeout > 0 && g.now().Sub(g.startTime) >= g.timeout
}

// toggleDebug はシーンのデバッグ表示を切り替える
func (g *Game) toggleDebug() {
	if d, ok := g.scene.(DebugToggler); ok {
		d.SetDebug(!d.IsDebug())
	}
}

// dispatch はポインタイベントを順にシーンへ渡す
func (g *Game) dispatch(events []PointerEvent) {
	if g.sink == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case PointerDown:
			g.sink.PointerDown(ev.X, ev.Y)
		case PointerUp:
			g.sink.PointerUp(ev.X, ev.Y)
		}
	}
}

// collectPointerEvents はマウスとタッチの押下・解放を集める
func collectPointerEvents() []PointerEvent {
	var events []PointerEvent

	mx, my := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		events = append(events, PointerEvent{Kind: PointerDown, X: float64(mx), Y: float64(my)})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		events = append(events, PointerEvent{Kind: PointerUp, X: float64(mx), Y: float64(my)})
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		events = append(events, PointerEvent{Kind: PointerDown, X: float64(x), Y: float64(y)})
	}
	// 解放されたタッチは現在位置が取れないため、前フレームの位置を使う
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		events = append(events, PointerEvent{Kind: PointerUp, X: float64(x), Y: float64(y)})
	}
	return events
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout はウィンドウのサイズをそのまま論理画面のサイズにする
// 最小サイズ未満にはしない。サイズが変わったらシーンに通知する
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := clampSize(outsideWidth, outsideHeight)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.scene.Resize(w, h)
	}
	return w, h
}

// clampSize は最小サイズを下回らないようにする
func clampSize(w, h int) (int, int) {
	if w < MinWidth {
		w = MinWidth
	}
	if h < MinHeight {
		h = MinHeight
	}
	return w, h
}

// Run GUIモードでウィンドウを実行
func Run(scene Scene, sink PointerSink, opts Options) error {
	game := NewGame(scene, sink, opts)

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	game.log.Info("Window closed", "frames", game.frames)
	return nil
}

// RunHeadless はウィンドウを開かずにsimをframes回進める
// 実時間は待たず、ctxがキャンセルされた時点で打ち切る。進めたフレーム数を返す
func RunHeadless(ctx context.Context, sim Simulation, frames int) (int, error) {
	log := logger.Component("window")
	log.Info("Running headless", "frames", frames, "tps", TPS)

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			log.Info("Headless run cancelled", "frames", i)
			return i, nil
		default:
		}
		if err := sim.Update(FrameDuration); err != nil {
			return i, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return frames, nil
}

// FramesFor は時間をフレーム数に換算する
func FramesFor(d time.Duration) int {
	return int(d / FrameDuration)
}
