package document

import "strings"

// Géométrie A4 portrait, en millimètres. Le corps est posé ligne à ligne
// avec une hauteur fixe ; la zone imprimable réserve le pied de page.
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	margin        = 15.0
	usableWidth   = pageWidth - 2*margin
	lineHeight    = 6.0
	footerHeight  = 15.0
	titleHeight   = 14.0 // bloc titre, première page uniquement
	bodyFontSize  = 11.0
	titleFontSize = 16.0
)

// linesPerPage: capacité d'une page en lignes de corps. La première page
// perd le bloc titre.
func linesPerPage(withTitle bool) int {
	usable := pageHeight - 2*margin - footerHeight
	if withTitle {
		usable -= titleHeight
	}
	return int(usable / lineHeight)
}

// WrapLines replie le corps sur la largeur utile. La mesure de largeur est
// injectée (le rendu passe celle de la police courante), ce qui garde le
// repli pur et testable. Les sauts de ligne du modèle sont respectés, un
// paragraphe vide donne une ligne vide.
func WrapLines(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			cand := cur + " " + w
			if measure(cand) > maxWidth {
				lines = append(lines, cur)
				cur = w
			} else {
				cur = cand
			}
		}
		lines = append(lines, cur)
	}
	return lines
}

// Paginate découpe les lignes repliées en pages. La première page a sa
// propre capacité (bloc titre). Une ligne de trop produit une page de plus,
// jamais de ligne rognée.
func Paginate(lines []string, firstCap, pageCap int) [][]string {
	if firstCap < 1 {
		firstCap = 1
	}
	if pageCap < 1 {
		pageCap = 1
	}
	var pages [][]string
	capacity := firstCap
	rest := lines
	for {
		if len(rest) <= capacity {
			pages = append(pages, rest)
			return pages
		}
		pages = append(pages, rest[:capacity])
		rest = rest[capacity:]
		capacity = pageCap
	}
}

// Run: tronçon d'une ligne affichée, en graisse normale ou grasse.
type Run struct {
	Text string
	Bold bool
}

// SplitBoldRuns rebalaye une ligne affichée et passe en gras chaque
// occurrence littérale d'une valeur dynamique. Politique gloutonne :
// l'occurrence la plus à gauche gagne, et à position égale c'est l'ordre de
// la liste des valeurs dynamiques qui tranche, jamais la plus longue.
func SplitBoldRuns(line string, dynamics []string) []Run {
	if line == "" {
		return []Run{{Text: ""}}
	}
	var runs []Run
	rest := line
	for rest != "" {
		best := -1
		bestPos := -1
		for i, v := range dynamics {
			if v == "" {
				continue
			}
			pos := strings.Index(rest, v)
			if pos < 0 {
				continue
			}
			if bestPos == -1 || pos < bestPos {
				bestPos = pos
				best = i
			}
		}
		if best == -1 {
			runs = append(runs, Run{Text: rest})
			break
		}
		if bestPos > 0 {
			runs = append(runs, Run{Text: rest[:bestPos]})
		}
		runs = append(runs, Run{Text: dynamics[best], Bold: true})
		rest = rest[bestPos+len(dynamics[best]):]
	}
	return runs
}
