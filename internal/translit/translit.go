// Package translit provides a best-effort kana-to-romaji transliteration
// for the Japanese symbol names shown in generated charts. Kana runs are
// converted Hepburn-style; anything that is not kana passes through
// unchanged, so the result is a partial transliteration.
package translit

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Base syllables, keyed by hiragana. Katakana is folded onto this table.
var kanaRomaji = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'ゐ': "wi", 'ゑ': "we", 'を': "wo",
	'ん': "n", 'ゔ': "vu",
	// Small vowels stand alone in symbol names often enough to matter.
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
}

// Small ya/yu/yo form digraphs with a preceding i-column syllable.
var smallYaYuYo = map[rune]string{
	'ゃ': "ya", 'ゅ': "yu", 'ょ': "yo",
}

// Transliterate converts the kana in s to romaji, passing everything else
// through. Input is NFKC-folded first so halfwidth katakana and combining
// voicing marks land on the composed forms the tables know.
func Transliterate(s string) string {
	var b strings.Builder

	// The previous kana's romaji stays pending until the next rune is
	// seen, because small ya/yu/yo and the long vowel mark modify it.
	pending := ""
	sokuon := false

	emit := func() {
		b.WriteString(pending)
		pending = ""
	}
	begin := func(syl string) {
		emit()
		if sokuon {
			// Gemination doubles the next consonant; Hepburn
			// writes っち as "tchi".
			switch {
			case strings.HasPrefix(syl, "ch"):
				syl = "t" + syl
			case !isVowel(syl[0]) && syl[0] != 'n':
				syl = syl[:1] + syl
			}
			sokuon = false
		}
		pending = syl
	}
	breakRun := func() {
		if sokuon {
			// A sokuon with nothing to geminate renders literally.
			b.WriteString("tsu")
			sokuon = false
		}
		emit()
	}

	for _, r := range norm.NFKC.String(s) {
		// Fold katakana onto the hiragana table.
		folded := r
		if r >= 'ァ' && r <= 'ヶ' {
			folded = r - 'ァ' + 'ぁ'
		}

		switch {
		case folded == 'っ':
			emit()
			sokuon = true
		case folded == 'ー':
			// Long vowel mark: repeat the previous vowel.
			if v := lastVowel(pending); v != "" {
				emit()
				pending = v
			}
		case smallYaYuYo[folded] != "":
			y := smallYaYuYo[folded]
			if strings.HasSuffix(pending, "i") {
				stem := digraphStem(pending)
				if strings.HasSuffix(stem, "sh") || strings.HasSuffix(stem, "ch") || stem == "j" {
					// Hepburn drops the glide: sha, chu, jo.
					y = y[1:]
				}
				pending = stem + y
			} else {
				begin(y)
			}
		case kanaRomaji[folded] != "":
			begin(kanaRomaji[folded])
		default:
			breakRun()
			b.WriteRune(r)
		}
	}
	breakRun()

	return b.String()
}

// digraphStem turns an i-column syllable into its digraph stem:
// ki -> k, shi -> sh, chi -> ch, ji -> j.
func digraphStem(syl string) string {
	return strings.TrimSuffix(syl, "i")
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}

	return false
}

func lastVowel(syl string) string {
	for i := len(syl) - 1; i >= 0; i-- {
		if isVowel(syl[i]) {
			return syl[i : i+1]
		}
	}

	return ""
}
