package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zurustar/balloon-pump/pkg/scene"
)

// Report はヘッドレス実行の結果
type Report struct {
	Seed       uint64
	Stats      scene.Stats
	FromFile   int // ファイルから読み込んだ画像数
	Generated  int // 生成した画像数
	PopSounds  int
	PumpSounds int
}

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#3498DB")).
				Padding(0, 1)
	reportLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7F8C8D")).
				Width(12)
	reportValueStyle = lipgloss.NewStyle().
				Bold(true)
	reportBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3498DB")).
			Padding(0, 1)
)

// reportRows は表示する行（ラベルと値）を返す
func reportRows(r Report) [][2]string {
	st := r.Stats
	return [][2]string{
		{"seed", fmt.Sprintf("%d", r.Seed)},
		{"frames", fmt.Sprintf("%d (%.1fs)", st.Frames, st.Elapsed.Seconds())},
		{"pumps", fmt.Sprintf("%d (accepted %d, ignored %d)", st.Pumps, st.Balloons.Presses, st.Balloons.Ignored)},
		{"created", fmt.Sprintf("%d", st.Balloons.Created)},
		{"launched", fmt.Sprintf("%d", st.Balloons.Launched)},
		{"popped", fmt.Sprintf("%d (taps %d)", st.Balloons.Popped, st.Taps)},
		{"live pool", fmt.Sprintf("%d (flying %d)", st.Live, st.Flying)},
		{"images", fmt.Sprintf("%d file, %d generated", r.FromFile, r.Generated)},
		{"sounds", fmt.Sprintf("%d pop, %d pump", r.PopSounds, r.PumpSounds)},
	}
}

// RenderReport はヘッドレス実行の結果を枠付きで整形する
func RenderReport(r Report) string {
	lines := make([]string, 0, 10)
	lines = append(lines, reportTitleStyle.Render("Balloon Pump session"))
	for _, row := range reportRows(r) {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			reportLabelStyle.Render(row[0]),
			reportValueStyle.Render(row[1]),
		))
	}
	return reportBoxStyle.Render(strings.Join(lines, "\n"))
}
