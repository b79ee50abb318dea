package reading

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/hanzikit/cjklex/internal/domain"
)

func init() {
	registerBuiltin("Pinyin", func(opts Options) (Operator, error) {
		return newPinyin(opts)
	})
}

// pinyinSyllables is the plain-form syllable inventory of Hanyu Pinyin,
// including the erhua suffix "r".
const pinyinSyllables = `
a ai an ang ao
ba bai ban bang bao bei ben beng bi bian biao bie bin bing bo bu
ca cai can cang cao ce cen ceng cha chai chan chang chao che chen cheng chi
chong chou chu chua chuai chuan chuang chui chun chuo ci cong cou cu cuan cui cun cuo
da dai dan dang dao de dei den deng di dia dian diao die ding diu dong dou du duan dui dun duo
e ei en eng er
fa fan fang fei fen feng fo fou fu
ga gai gan gang gao ge gei gen geng gong gou gu gua guai guan guang gui gun guo
ha hai han hang hao he hei hen heng hong hou hu hua huai huan huang hui hun huo
ji jia jian jiang jiao jie jin jing jiong jiu ju juan jue jun
ka kai kan kang kao ke kei ken keng kong kou ku kua kuai kuan kuang kui kun kuo
la lai lan lang lao le lei leng li lia lian liang liao lie lin ling liu lo long lou lu luan lun luo lü lüe
ma mai man mang mao me mei men meng mi mian miao mie min ming miu mo mou mu
na nai nan nang nao ne nei nen neng ni nian niang niao nie nin ning niu nong nou nu nuan nuo nü nüe
o ou
pa pai pan pang pao pei pen peng pi pian piao pie pin ping po pou pu
qi qia qian qiang qiao qie qin qing qiong qiu qu quan que qun
r ran rang rao re ren reng ri rong rou ru rua ruan rui run ruo
sa sai san sang sao se sen seng sha shai shan shang shao she shei shen sheng shi
shou shu shua shuai shuan shuang shui shun shuo si song sou su suan sui sun suo
ta tai tan tang tao te teng ti tian tiao tie ting tong tou tu tuan tui tun tuo
wa wai wan wang wei wen weng wo wu
xi xia xian xiang xiao xie xin xing xiong xiu xu xuan xue xun
ya yan yang yao ye yi yin ying yo yong you yu yuan yue yun
za zai zan zang zao ze zei zen zeng zha zhai zhan zhang zhao zhe zhei zhen zheng zhi
zhong zhou zhu zhua zhuai zhuan zhuang zhui zhun zhuo zi zong zou zu zuan zui zun zuo
`

var (
	pinyinInventoryOnce sync.Once
	pinyinInventory     map[string]struct{}
	pinyinByLength      [][]string
)

func loadPinyinInventory() {
	pinyinInventoryOnce.Do(func() {
		pinyinInventory = make(map[string]struct{})
		longest := 0
		for _, s := range strings.Fields(pinyinSyllables) {
			pinyinInventory[s] = struct{}{}
			if n := len([]rune(s)); n > longest {
				longest = n
			}
		}
		pinyinByLength = make([][]string, longest+1)
		for s := range pinyinInventory {
			n := len([]rune(s))
			pinyinByLength[n] = append(pinyinByLength[n], s)
		}
	})
}

// Combining marks of the four Pinyin tone diacritics.
const (
	markMacron = '̄' // first tone
	markAcute  = '́' // second tone
	markCaron  = '̌' // third tone
	markGrave  = '̀' // fourth tone
)

var toneByMark = map[rune]Tone{
	markMacron: 1,
	markAcute:  2,
	markCaron:  3,
	markGrave:  4,
}

var markByTone = map[Tone]rune{
	1: markMacron,
	2: markAcute,
	3: markCaron,
	4: markGrave,
}

// pinyin implements Operator for Hanyu Pinyin in either the numbered or
// the diacritic tone convention.
type pinyin struct {
	numbered bool
	yVowel   string
}

func newPinyin(opts Options) (*pinyin, error) {
	loadPinyinInventory()

	p := &pinyin{yVowel: opts.YVowel}
	if p.yVowel == "" {
		p.yVowel = "ü"
	}

	switch opts.ToneMarks {
	case "", "diacritics":
	case "numbers":
		p.numbered = true
	default:
		return nil, fmt.Errorf("pinyin tone marks %q: %w", opts.ToneMarks, domain.ErrUnsupported)
	}
	return p, nil
}

func (p *pinyin) Name() string { return "Pinyin" }

// normalizePlain lowercases a plain form and folds the configured ü
// representation so inventory lookups see canonical syllables.
func (p *pinyin) normalizePlain(s string) string {
	s = strings.ToLower(s)
	if p.yVowel != "ü" {
		s = strings.ReplaceAll(s, strings.ToLower(p.yVowel), "ü")
	}
	return s
}

func (p *pinyin) IsEntity(token string) bool {
	_, _, err := p.SplitTone(token)
	return err == nil
}

func (p *pinyin) SplitTone(entity string) (string, Tone, error) {
	if entity == "" {
		return "", NoTone, fmt.Errorf("empty entity: %w", domain.ErrInvalidEntity)
	}

	if p.numbered {
		plain, tone := entity, NoTone
		runes := []rune(entity)
		if last := runes[len(runes)-1]; last >= '1' && last <= '5' {
			tone = Tone(last - '0')
			plain = string(runes[:len(runes)-1])
		}
		plain = p.normalizePlain(plain)
		if _, ok := pinyinInventory[plain]; !ok {
			return "", NoTone, fmt.Errorf("entity %q: %w", entity, domain.ErrInvalidEntity)
		}
		return plain, tone, nil
	}

	tone := Tone(5)
	var plain []rune
	for _, r := range norm.NFD.String(entity) {
		if t, ok := toneByMark[r]; ok {
			if tone != 5 {
				return "", NoTone, fmt.Errorf("entity %q: %w", entity, domain.ErrInvalidEntity)
			}
			tone = t
			continue
		}
		plain = append(plain, r)
	}
	folded := p.normalizePlain(norm.NFC.String(string(plain)))
	if _, ok := pinyinInventory[folded]; !ok {
		return "", NoTone, fmt.Errorf("entity %q: %w", entity, domain.ErrInvalidEntity)
	}
	return folded, tone, nil
}

func (p *pinyin) Tones() []Tone {
	if p.numbered {
		return []Tone{1, 2, 3, 4, 5, NoTone}
	}
	return []Tone{1, 2, 3, 4, 5}
}

func (p *pinyin) TonalEntity(plain string, tone Tone) (string, error) {
	folded := p.normalizePlain(plain)
	if _, ok := pinyinInventory[folded]; !ok {
		return "", fmt.Errorf("plain form %q: %w", plain, domain.ErrInvalidEntity)
	}

	if p.numbered {
		out := folded
		if p.yVowel != "ü" {
			out = strings.ReplaceAll(out, "ü", p.yVowel)
		}
		switch {
		case tone == NoTone:
			return out, nil
		case tone >= 1 && tone <= 5:
			return fmt.Sprintf("%s%d", out, tone), nil
		default:
			return "", fmt.Errorf("tone %d: %w", tone, domain.ErrInvalidEntity)
		}
	}

	switch {
	case tone == 5:
		return folded, nil
	case tone >= 1 && tone <= 4:
		return markDiacritic(folded, markByTone[tone])
	default:
		// Diacritics cannot write an unknown tone.
		return "", fmt.Errorf("tone %d: %w", tone, domain.ErrInvalidEntity)
	}
}

// markDiacritic places a combining tone mark on the syllable's main vowel:
// a and e always take the mark, in "ou" the o takes it, otherwise the last
// vowel does.
func markDiacritic(plain string, mark rune) (string, error) {
	runes := []rune(plain)
	isVowel := func(r rune) bool {
		return r == 'a' || r == 'e' || r == 'i' || r == 'o' || r == 'u' || r == 'ü'
	}

	pos := -1
	for i, r := range runes {
		switch {
		case r == 'a' || r == 'e':
			pos = i
		case r == 'o' && (pos == -1 || runes[pos] != 'a' && runes[pos] != 'e'):
			pos = i
		case isVowel(r) && (pos == -1 || runes[pos] != 'a' && runes[pos] != 'e' && runes[pos] != 'o'):
			pos = i
		}
	}
	if pos == -1 {
		// Syllabic consonants such as "r" carry no vowel to mark.
		return "", fmt.Errorf("plain form %q has no vowel: %w", plain, domain.ErrInvalidEntity)
	}

	var b strings.Builder
	b.WriteString(string(runes[:pos+1]))
	b.WriteRune(mark)
	b.WriteString(string(runes[pos+1:]))
	return norm.NFC.String(b.String()), nil
}

// decompositionLimit bounds the cross product of ambiguous segmentations.
const decompositionLimit = 64

func (p *pinyin) Decompose(s string) ([][]string, error) {
	parts := splitRuns(s, p.isReadingRune)

	decompositions := [][]string{{}}
	for _, part := range parts {
		var options [][]string
		if part.reading {
			options = p.segment(part.text)
			if len(options) == 0 {
				// Unparseable run stays behind as residue.
				options = [][]string{{part.text}}
			}
		} else {
			options = [][]string{{part.text}}
		}

		var next [][]string
		for _, head := range decompositions {
			for _, tail := range options {
				combined := make([]string, 0, len(head)+len(tail))
				combined = append(combined, head...)
				combined = append(combined, tail...)
				next = append(next, combined)
				if len(next) >= decompositionLimit {
					break
				}
			}
			if len(next) >= decompositionLimit {
				break
			}
		}
		decompositions = next
	}

	if len(decompositions) == 0 {
		return nil, fmt.Errorf("decompose %q: %w", s, domain.ErrDecomposition)
	}
	return decompositions, nil
}

func (p *pinyin) isReadingRune(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
		return true
	}
	if p.numbered && r >= '1' && r <= '5' {
		return true
	}
	if r == 'ü' || r == 'Ü' {
		return true
	}
	if _, ok := toneByMark[r]; ok && !p.numbered {
		return true
	}
	if !p.numbered {
		// Precomposed vowels with tone marks decompose to letter + mark.
		for _, d := range norm.NFD.String(string(r)) {
			if _, ok := toneByMark[d]; ok {
				return true
			}
		}
	}
	if strings.ContainsRune(p.yVowel, r) && r != 'v' {
		return true
	}
	return false
}

// run is a maximal substring that is either reading material or residue.
type run struct {
	text    string
	reading bool
}

// splitRuns cuts a string into reading runs and residue runs. Whitespace
// separates runs and is dropped.
func splitRuns(s string, isReading func(rune) bool) []run {
	var runs []run
	var current []rune
	currentReading := false

	flush := func() {
		if len(current) > 0 {
			runs = append(runs, run{text: string(current), reading: currentReading})
			current = nil
		}
	}

	for _, r := range s {
		if unicode.IsSpace(r) {
			flush()
			continue
		}
		reads := isReading(r)
		if len(current) > 0 && reads != currentReading {
			flush()
		}
		currentReading = reads
		current = append(current, r)
	}
	flush()
	return runs
}

// segment returns every way of reading a run as a sequence of entities.
func (p *pinyin) segment(text string) [][]string {
	runes := []rune(norm.NFD.String(text))

	var results [][]string
	var current []string
	var walk func(pos int)
	walk = func(pos int) {
		if len(results) >= decompositionLimit {
			return
		}
		if pos == len(runes) {
			results = append(results, append([]string(nil), current...))
			return
		}
		for _, syllable := range candidateSyllables(runes[pos:]) {
			consumed, ok := p.matchSyllable(runes[pos:], syllable)
			if !ok {
				continue
			}
			entity := norm.NFC.String(string(runes[pos : pos+consumed]))
			current = append(current, entity)
			walk(pos + consumed)
			current = current[:len(current)-1]
		}
	}
	walk(0)
	return results
}

// candidateSyllables lists inventory syllables no longer than the rest of
// the run, longest first so greedy readings come out ahead.
func candidateSyllables(rest []rune) []string {
	var out []string
	max := len(pinyinByLength) - 1
	if len(rest) < max {
		max = len(rest)
	}
	for n := max; n >= 1; n-- {
		out = append(out, pinyinByLength[n]...)
	}
	return out
}

// matchSyllable tests whether the run starts with the given plain syllable,
// allowing tone diacritics between letters (or a trailing tone digit in the
// numbered convention). Returns the number of runes consumed.
func (p *pinyin) matchSyllable(rest []rune, syllable string) (int, bool) {
	want := []rune(syllable)
	i := 0
	for _, w := range want {
		matched := false
		for i < len(rest) {
			r := rest[i]
			if !p.numbered {
				if _, ok := toneByMark[r]; ok {
					i++
					continue
				}
			}
			folded := unicode.ToLower(r)
			if folded == w {
				matched = true
				i++
				break
			}
			if w == 'ü' && foldsToUmlautU(rest[i:], p.yVowel) {
				matched = true
				i += len([]rune(p.yVowel))
				break
			}
			return 0, false
		}
		if !matched {
			return 0, false
		}
	}
	// Trailing combining marks belong to the last vowel.
	for !p.numbered && i < len(rest) {
		if _, ok := toneByMark[rest[i]]; !ok {
			break
		}
		i++
	}
	if p.numbered && i < len(rest) && rest[i] >= '1' && rest[i] <= '5' {
		i++
	}
	return i, true
}

// foldsToUmlautU reports whether the run starts with the configured ü
// representation, e.g. "u:" in CEDICT data.
func foldsToUmlautU(rest []rune, yVowel string) bool {
	want := []rune(strings.ToLower(yVowel))
	if len(rest) < len(want) {
		return false
	}
	for i, w := range want {
		if unicode.ToLower(rest[i]) != w {
			return false
		}
	}
	return true
}
