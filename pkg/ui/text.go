package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 按像素宽度换行
//
// 参数:
//   - s: 文本，已有的换行符保留为段落分隔
//   - face: 测量用字体
//   - maxWidth: 最大行宽（像素）
//
// 返回:
//   - []string: 换行后的各行，至少一行
//
// 在空格处断行，单词不拆开；单个词比整行还宽时（例如没有空格的日文）按字符断开。
func WrapText(s string, face text.Face, maxWidth float64) []string {
	if face == nil || maxWidth <= 0 {
		return []string{s}
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, face, maxWidth)...)
	}
	return lines
}

func wrapParagraph(para string, face text.Face, maxWidth float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if MeasureWidth(candidate, face) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if MeasureWidth(w, face) <= maxWidth {
			line = w
			continue
		}
		// 过长的词按字符拆分，最后一段留给后面的词接上
		parts := breakWord(w, face, maxWidth)
		lines = append(lines, parts[:len(parts)-1]...)
		line = parts[len(parts)-1]
	}
	return append(lines, line)
}

// breakWord 把一个词拆成不超过 maxWidth 的若干段，每段至少一个字符
func breakWord(w string, face text.Face, maxWidth float64) []string {
	var parts []string
	cur := ""
	for len(w) > 0 {
		r, size := utf8.DecodeRuneInString(w)
		w = w[size:]
		next := cur + string(r)
		if cur != "" && MeasureWidth(next, face) > maxWidth {
			parts = append(parts, cur)
			next = string(r)
		}
		cur = next
	}
	return append(parts, cur)
}

// MeasureWidth 返回单行文字的像素宽度
func MeasureWidth(s string, face text.Face) float64 {
	if s == "" || face == nil {
		return 0
	}
	w, _ := text.Measure(s, face, 0)
	return w
}

// Truncate 截断文字使其不超过 maxWidth，截断时以省略号结尾
func Truncate(s string, face text.Face, maxWidth float64) string {
	if face == nil || MeasureWidth(s, face) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + "…"
		if MeasureWidth(candidate, face) <= maxWidth {
			return candidate
		}
	}
	return "…"
}
