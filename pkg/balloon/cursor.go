package balloon

// Cursor はバルーン画像と文字画像を巡回選択するカーソル
// 2つのカーソルは独立しており、バルーン生成時にだけそれぞれ1つ進む
type Cursor struct {
	nextSkin   int // 次に使うバルーン画像（1..SkinCount）
	lastLetter int // 直前に使った文字（0始まり、未使用は-1）
}

// NewCursor はプロセス開始時点のカーソルを作成する
func NewCursor() Cursor {
	return Cursor{nextSkin: 1, lastLetter: -1}
}

// Next はカーソルを1つ進め、今回使う画像番号と文字番号（どちらも1始まり）を返す
func (c *Cursor) Next() (skin, letter int) {
	c.lastLetter = (c.lastLetter + 1) % LetterCount
	skin = c.nextSkin
	c.nextSkin = (c.nextSkin % SkinCount) + 1
	return skin, c.lastLetter + 1
}

// Peek は次に使われる画像番号と文字番号を返す（カーソルは進めない）
func (c Cursor) Peek() (skin, letter int) {
	return c.nextSkin, (c.lastLetter+1)%LetterCount + 1
}
