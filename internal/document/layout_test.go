package document

import (
	"reflect"
	"strings"
	"testing"
)

// Mesure de test : un caractère = une unité de largeur.
func charWidth(s string) float64 { return float64(len(s)) }

func TestWrapLines(t *testing.T) {
	lines := WrapLines("aaa bbb ccc ddd", 10, charWidth)
	want := []string{"aaa bbb", "ccc ddd"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, attendu %v", lines, want)
	}
}

func TestWrapLinesKeepsParagraphs(t *testing.T) {
	lines := WrapLines("un\n\ndeux trois", 20, charWidth)
	want := []string{"un", "", "deux trois"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, attendu %v", lines, want)
	}
}

// Un mot plus large que la page occupe sa ligne, jamais tronqué.
func TestWrapLinesOverlongWord(t *testing.T) {
	lines := WrapLines("a incompressible b", 10, charWidth)
	want := []string{"a", "incompressible", "b"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, attendu %v", lines, want)
	}
}

func TestPaginateFitsOnePage(t *testing.T) {
	lines := make([]string, 40)
	pages := Paginate(lines, 40, 44)
	if len(pages) != 1 || len(pages[0]) != 40 {
		t.Errorf("pages = %d, attendu 1 page de 40 lignes", len(pages))
	}
}

// Une ligne au-delà de la capacité de la première page : exactement deux
// pages, la seconde portant la seule ligne excédentaire. Le titre ne vit
// que sur la première (sa capacité est la seule réduite).
func TestPaginateBoundary(t *testing.T) {
	lines := make([]string, 41)
	pages := Paginate(lines, 40, 44)
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, attendu 2", len(pages))
	}
	if len(pages[0]) != 40 || len(pages[1]) != 1 {
		t.Errorf("répartition = %d/%d, attendu 40/1", len(pages[0]), len(pages[1]))
	}
}

func TestPaginateLongBody(t *testing.T) {
	lines := make([]string, 40+44+3)
	pages := Paginate(lines, 40, 44)
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, attendu 3", len(pages))
	}
	if len(pages[2]) != 3 {
		t.Errorf("dernière page = %d lignes, attendu 3", len(pages[2]))
	}
}

func TestFirstPageCapacitySmaller(t *testing.T) {
	if linesPerPage(true) >= linesPerPage(false) {
		t.Errorf("la première page (titre) devrait contenir moins de lignes : %d vs %d",
			linesPerPage(true), linesPerPage(false))
	}
}

func TestSplitBoldRunsNoMatch(t *testing.T) {
	runs := SplitBoldRuns("aucune valeur ici", []string{"850.00"})
	want := []Run{{Text: "aucune valeur ici"}}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("runs = %v, attendu %v", runs, want)
	}
}

func TestSplitBoldRunsBasic(t *testing.T) {
	runs := SplitBoldRuns("loyer de 850.00 par mois", []string{"850.00"})
	want := []Run{
		{Text: "loyer de "},
		{Text: "850.00", Bold: true},
		{Text: " par mois"},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("runs = %v, attendu %v", runs, want)
	}
}

// À position égale, l'ordre de la liste tranche : "10" avant "100" dans la
// liste gagne sur la ligne "100", même si "100" serait la correspondance la
// plus longue. Comportement voulu, pas un bug.
func TestSplitBoldRunsFirstMatchWins(t *testing.T) {
	runs := SplitBoldRuns("100", []string{"10", "100"})
	want := []Run{
		{Text: "10", Bold: true},
		{Text: "0"},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("runs = %v, attendu %v", runs, want)
	}
}

// L'occurrence la plus à gauche gagne sur l'ordre de la liste.
func TestSplitBoldRunsLeftmostWins(t *testing.T) {
	runs := SplitBoldRuns("ab puis xyz", []string{"xyz", "ab"})
	want := []Run{
		{Text: "ab", Bold: true},
		{Text: " puis "},
		{Text: "xyz", Bold: true},
	}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("runs = %v, attendu %v", runs, want)
	}
}

func TestSplitBoldRunsRepeated(t *testing.T) {
	runs := SplitBoldRuns("850.00 puis encore 850.00", []string{"850.00"})
	var bold int
	for _, r := range runs {
		if r.Bold {
			if r.Text != "850.00" {
				t.Errorf("tronçon gras inattendu : %q", r.Text)
			}
			bold++
		}
	}
	if bold != 2 {
		t.Errorf("tronçons gras = %d, attendu 2", bold)
	}
}

// Reconstituer la ligne depuis ses tronçons doit rendre l'original.
func TestSplitBoldRunsLossless(t *testing.T) {
	line := "Du 01/01/2025 au 01/01/2025, loyer 850.00"
	runs := SplitBoldRuns(line, []string{"01/01/2025", "01/01/2025", "850.00"})
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	if sb.String() != line {
		t.Errorf("reconstruction = %q, attendu %q", sb.String(), line)
	}
}
