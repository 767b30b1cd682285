package textanalysis

// LexiconVersion 情感词典与关键词表的版本号。
// 修改下方任何一张表都会改变输出，必须同步递增版本号。
const LexiconVersion = "2025.1"

// valence 情感词典（投诉场景精简词表）：词 → 极性强度（约 -4 ~ +4）
var valence = map[string]float64{
	// ── 正向 ──
	"amazing":     2.8,
	"appreciate":  1.7,
	"appreciated": 2.3,
	"awesome":     3.1,
	"best":        3.2,
	"better":      1.9,
	"clean":       1.7,
	"comfortable": 1.5,
	"delicious":   2.7,
	"enjoy":       2.2,
	"enjoyed":     2.3,
	"excellent":   3.2,
	"fantastic":   2.6,
	"fine":        0.8,
	"fixed":       1.1,
	"fresh":       1.3,
	"friendly":    2.2,
	"fun":         2.3,
	"glad":        2.0,
	"good":        1.9,
	"great":       3.1,
	"happy":       2.7,
	"helpful":     1.7,
	"kind":        2.4,
	"like":        1.5,
	"love":        3.2,
	"loved":       2.9,
	"lovely":      2.8,
	"nice":        1.8,
	"ok":          0.9,
	"okay":        0.9,
	"perfect":     2.7,
	"pleasant":    2.3,
	"please":      1.3,
	"pleased":     1.9,
	"quick":       1.0,
	"resolved":    1.2,
	"safe":        1.9,
	"satisfied":   1.8,
	"tasty":       1.8,
	"thank":       1.5,
	"thanks":      1.9,
	"welcome":     2.0,
	"wonderful":   2.7,
	"yummy":       2.4,

	// ── 负向 ──
	"angry":         -2.3,
	"annoyed":       -1.6,
	"annoying":      -1.7,
	"awful":         -2.0,
	"bad":           -2.5,
	"blocked":       -1.1,
	"broken":        -1.7,
	"complain":      -1.5,
	"complaint":     -1.2,
	"damage":        -2.2,
	"damaged":       -1.9,
	"danger":        -2.4,
	"dangerous":     -2.1,
	"delay":         -1.3,
	"delayed":       -0.9,
	"dirty":         -1.9,
	"disappointed":  -1.9,
	"disappointing": -2.2,
	"disgusting":    -2.4,
	"emergency":     -1.6,
	"fail":          -2.5,
	"failed":        -2.3,
	"fear":          -2.2,
	"fire":          -1.4,
	"flood":         -1.6,
	"frustrated":    -2.0,
	"frustrating":   -1.9,
	"hate":          -2.7,
	"horrible":      -2.5,
	"hurt":          -2.4,
	"ill":           -1.8,
	"mess":          -1.5,
	"messy":         -1.5,
	"nasty":         -2.6,
	"noisy":         -0.7,
	"pain":          -2.3,
	"poor":          -2.1,
	"problem":       -1.7,
	"problems":      -1.7,
	"rotten":        -2.3,
	"rude":          -2.0,
	"sad":           -2.1,
	"scared":        -2.2,
	"sick":          -2.0,
	"smelly":        -1.7,
	"spoiled":       -1.6,
	"stale":         -1.2,
	"stink":         -1.7,
	"stuck":         -1.4,
	"terrible":      -2.1,
	"unhappy":       -1.8,
	"unsafe":        -2.0,
	"useless":       -1.8,
	"worried":       -1.2,
	"worry":         -1.9,
	"worse":         -2.1,
	"worst":         -3.1,
}

// boosters 强度修饰词：正值增强，负值减弱
var boosters = map[string]float64{
	"absolutely": boostIncr,
	"completely": boostIncr,
	"extremely":  boostIncr,
	"highly":     boostIncr,
	"incredibly": boostIncr,
	"really":     boostIncr,
	"so":         boostIncr,
	"super":      boostIncr,
	"totally":    boostIncr,
	"very":       boostIncr,
	"barely":     boostDecr,
	"hardly":     boostDecr,
	"kinda":      boostDecr,
	"slightly":   boostDecr,
	"somewhat":   boostDecr,
	"marginally": boostDecr,
}

// negations 否定词（另外所有以 n't 结尾的词也视为否定）
var negations = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"none":    true,
	"nobody":  true,
	"nothing": true,
	"neither": true,
	"nor":     true,
	"cannot":  true,
	"without": true,
	"cant":    true,
	"dont":    true,
	"wont":    true,
	"isnt":    true,
	"wasnt":   true,
	"arent":   true,
	"didnt":   true,
	"doesnt":  true,
}

// ── 投诉分类关键词（声明顺序即平局时的优先顺序） ──

type categoryKeywords struct {
	category string
	keywords []string
}

var categoryTable = []categoryKeywords{
	{"plumbing", []string{"water", "leak", "pipe", "flush", "toilet", "shower", "tap", "sink", "drainage", "bath"}},
	{"electrical", []string{"light", "power", "outlet", "socket", "wire", "bulb", "electricity", "fan", "switch"}},
	{"cleaning", []string{"dirty", "clean", "hygiene", "trash", "garbage", "dust", "stain", "mess", "cockroach", "pest"}},
	{"maintenance", []string{"broken", "fix", "repair", "damage", "crack", "furniture", "door", "window", "wall", "ceiling"}},
	{"noise", []string{"noise", "loud", "sound", "disturb", "quiet", "sleep", "party", "volume", "music"}},
}

// ── 优先级关键词 ──

var urgentKeywords = []string{
	"immediate", "urgent", "emergency", "dangerous", "safety", "hazard",
	"fire", "flood", "leak", "gas", "serious", "critical", "now",
}

var highKeywords = []string{
	"important", "not working", "broken", "damage", "can't", "failed", "problem",
	"issue", "malfunction", "severe", "significant",
}

var lowKeywords = []string{
	"minor", "small", "little", "slight", "would like", "appreciate",
	"when possible", "sometime", "eventually",
}

// ── 处理建议 ──

// TrailingSuggestion 所有建议列表末尾追加的通用建议
const TrailingSuggestion = "Submit detailed information to help maintenance staff resolve the issue faster"

var suggestionTable = map[string][]string{
	"plumbing": {
		"Check if the water valve is properly open",
		"Try using a plunger to clear minor blockages",
		"Run hot water through the drain to clear minor clogs",
		"Check if the float in the toilet tank is functioning properly",
	},
	"electrical": {
		"Check if the circuit breaker has tripped",
		"Try replacing the light bulb or tube light",
		"Ensure the appliance is properly plugged in",
		"Check if other outlets in the same area are working",
	},
	"cleaning": {
		"Use appropriate cleaning supplies for the specific surface",
		"Ensure regular waste disposal",
		"Consider using natural cleaners like vinegar and baking soda",
		"Ventilate the area while cleaning",
	},
	"maintenance": {
		"Apply lubricant to squeaky hinges",
		"Tighten loose screws or bolts",
		"Check if furniture is assembled correctly",
		"Use wood filler for minor scratches on wooden surfaces",
	},
	"noise": {
		"Consider using earplugs or white noise machines",
		"Communicate with noisy neighbors during daytime",
		"Check if windows and doors are properly sealed",
		"Use soft furniture and carpets to absorb noise",
	},
	"other": {
		"Document the issue with photos if applicable",
		"Be specific about the location and nature of the problem",
		"Try basic troubleshooting before reporting",
		"Check online resources for common solutions",
	},
}
