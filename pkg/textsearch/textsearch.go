// Package textsearch aksan ve büyük/küçük harf duyarsız metin eşleştirmesi sağlar.
// "Operações" ile "operacoes" aynı kabul edilir.
package textsearch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold metni karşılaştırma için sadeleştirir: aksanları atar, küçük harfe çevirir, boşlukları kırpar.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains haystack içinde needle geçiyor mu (katlanmış karşılaştırma). Boş needle her zaman eşleşir.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// Equal iki metni katlanmış haliyle karşılaştırır.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
