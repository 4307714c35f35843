package utils

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"俄语商品名", "Смартфон Samsung Galaxy A54", []string{"смартфон", "samsung", "galaxy", "a54"}},
		{"过滤短词", "чай из трав", []string{"чай", "трав"}},
		{"标点分割", "кабель USB-C, 2м (белый)", []string{"кабель", "usb", "белый"}},
		{"空字符串", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"телефон", "телефон", 0},
		{"телефон", "телефоны", 1},
		{"kitob", "kitab", 1},
		{"чай", "", 3},
	}

	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, 期望 %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTokenSimilarity(t *testing.T) {
	// 完全相同
	if got := TokenSimilarity("смартфон", "смартфон"); got != 100 {
		t.Errorf("相同词相似度 = %d, 期望 100", got)
	}

	// 完全不同应该很低
	if got := TokenSimilarity("чай", "ноутбук"); got > 30 {
		t.Errorf("无关词相似度 = %d, 期望 <= 30", got)
	}

	// 相近词落在中间区间
	got := TokenSimilarity("телефон", "телефоны")
	if got <= 50 || got >= 100 {
		t.Errorf("近似词相似度 = %d, 期望在 (50, 100) 区间", got)
	}
}
