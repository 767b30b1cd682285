// Package textanalysis 投诉文本的启发式分析：情感打分、类别识别、优先级判定与处理建议。
// 全部为纯函数，输出只取决于输入文本与 LexiconVersion 对应的词表。
package textanalysis

import (
	"math"
	"strings"
	"unicode"
)

const (
	boostIncr = 0.293
	boostDecr = -0.293

	// 全大写强调的附加强度
	capsIncr = 0.733
	// 否定词翻转系数
	negScalar = -0.74
	// 每个感叹号的附加强度，最多计 4 个
	exclaimIncr = 0.292
	maxExclaims = 4
	// 归一化常数：x / sqrt(x² + alpha)
	normAlpha = 15.0
)

// 距离情感词 1/2/3 个位置的修饰词衰减
var boosterDecay = [3]float64{1.0, 0.95, 0.9}

type token struct {
	raw   string
	lower string
}

// Sentiment 返回文本的综合情感分，范围 [-1, 1]，0 表示中性或无法判断。
func Sentiment(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}
	capsDiff := mixedCase(tokens)

	scores := make([]float64, len(tokens))
	butIdx := -1
	for i, tok := range tokens {
		if tok.lower == "but" && butIdx < 0 {
			butIdx = i
		}
		if _, ok := boosters[tok.lower]; ok {
			continue
		}
		v, ok := valence[tok.lower]
		if !ok {
			continue
		}
		if capsDiff && isUpper(tok.raw) {
			v += sign(v) * capsIncr
		}

		for back := 1; back <= 3 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if b, ok := boosters[prev.lower]; ok {
				s := b
				if v < 0 {
					s = -s
				}
				if capsDiff && isUpper(prev.raw) {
					s += sign(v) * capsIncr
				}
				v += s * boosterDecay[back-1]
			}
			if isNegation(prev.lower) {
				v *= negScalar
			}
		}
		scores[i] = v
	}

	// "but" 之前的情感减半，之后的加强
	if butIdx >= 0 {
		for i := range scores {
			switch {
			case i < butIdx:
				scores[i] *= 0.5
			case i > butIdx:
				scores[i] *= 1.5
			}
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	if sum != 0 {
		ex := strings.Count(text, "!")
		if ex > maxExclaims {
			ex = maxExclaims
		}
		sum += sign(sum) * float64(ex) * exclaimIncr
	}
	return normalize(sum)
}

func normalize(score float64) float64 {
	n := score / math.Sqrt(score*score+normAlpha)
	switch {
	case n < -1:
		return -1
	case n > 1:
		return 1
	}
	return n
}

func tokenize(text string) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		})
		w = strings.Trim(w, "'")
		if w == "" {
			continue
		}
		out = append(out, token{raw: w, lower: strings.ToLower(w)})
	}
	return out
}

func isNegation(w string) bool {
	if strings.HasSuffix(w, "n't") {
		return true
	}
	return negations[strings.ReplaceAll(w, "'", "")]
}

// mixedCase 文本中既有全大写词又有非全大写词时，全大写才视为强调
func mixedCase(tokens []token) bool {
	upper := 0
	for _, t := range tokens {
		if isUpper(t.raw) {
			upper++
		}
	}
	return upper > 0 && upper < len(tokens)
}

func isUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
