package textinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLikelyTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		isolated bool
		want     bool
	}{
		{"chapter marker", "第一章 总则", false, true},
		{"section marker", "第三节 合同的履行", false, true},
		{"cjk numbered", "一、基本原则", false, true},
		{"arabic numbered", "1. 引言", false, true},
		{"paren numbered", "（一）适用范围", false, true},
		{"abstract literal", "Abstract", false, true},
		{"abstract literal case insensitive", "ABSTRACT", false, true},
		{"short isolated line", "年度工作报告", true, true},
		{"short line without isolation", "年度工作报告", false, true},
		{"long body sentence", strings.Repeat("本合同自双方签字之日起生效，", 10) + "。", false, false},
		{"empty", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyTitle(tt.text, tt.isolated))
		})
	}
}

func TestInferTitleLevel(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"第一章 总则", 1},
		{"第二十三条 违约责任", 2},
		{"一、基本情况", 3},
		{"12. 其他事项", 3},
		{"（三）实施步骤", 4},
		{"A. Background", 5},
		{"短标题", 2},
		{"这是一个长度刚好超过十个字的标题文本", 3},
		{"这是一个长度在二十到三十个字符之间的比较长的标题文字内容", 4},
		{strings.Repeat("标题", 20), 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferTitleLevel(tt.text), "text %q", tt.text)
	}
}

func TestIsLikelyListItem(t *testing.T) {
	assert.True(t, IsLikelyListItem("• первый пункт"))
	assert.True(t, IsLikelyListItem("1. 第一项"))
	assert.True(t, IsLikelyListItem("3、第三项"))
	assert.True(t, IsLikelyListItem("a) option"))
	assert.False(t, IsLikelyListItem("обычный текст параграфа"))
}

func TestIsLikelyQuote(t *testing.T) {
	assert.True(t, IsLikelyQuote("“不积跬步，无以至千里”"))
	assert.True(t, IsLikelyQuote("「四月は君の噓」"))
	assert.True(t, IsLikelyQuote(`"quoted text"`))
	assert.True(t, IsLikelyQuote("本段摘自《荀子·劝学》"))
	assert.False(t, IsLikelyQuote("просто текст"))
	assert.False(t, IsLikelyQuote(""))
}

func TestScriptRatios(t *testing.T) {
	t.Run("chinese above threshold", func(t *testing.T) {
		assert.True(t, IsChineseParagraph("本合同重要条款如下 abc"))
	})

	t.Run("short cjk string", func(t *testing.T) {
		assert.True(t, IsChineseParagraph("总则"))
	})

	t.Run("english paragraph", func(t *testing.T) {
		assert.False(t, IsChineseParagraph("This agreement is made by both parties"))
		assert.True(t, IsEnglishParagraph("This agreement is made by both parties"))
	})

	t.Run("numbers only satisfy neither", func(t *testing.T) {
		assert.False(t, IsChineseParagraph("2024-01-01 12:00"))
		assert.False(t, IsEnglishParagraph("2024-01-01 12:00"))
	})
}

func TestDetectListIndentLevel(t *testing.T) {
	assert.Equal(t, 0, DetectListIndentLevel("пункт"))
	assert.Equal(t, 1, DetectListIndentLevel("    пункт"))
	assert.Equal(t, 2, DetectListIndentLevel("        пункт"))
	// Полноширинный пробел считается за две колонки.
	assert.Equal(t, 1, DetectListIndentLevel("　　первый"))
}

func TestLeadingIndentColumns(t *testing.T) {
	assert.Equal(t, 0, LeadingIndentColumns("text"))
	assert.Equal(t, 2, LeadingIndentColumns("  text"))
	assert.Equal(t, 4, LeadingIndentColumns("　　正文"))
}
