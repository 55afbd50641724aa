package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var tokenRe = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// LoadTemplate lit un modèle texte sous TEMPLATE_DIR. Lecture à chaque
// appel, jamais de cache : un modèle modifié sur disque est pris en compte
// à la génération suivante.
func LoadTemplate(dir, name string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("lecture du modèle %s: %w", name, err)
	}
	return string(raw), nil
}

// FillTemplate remplace chaque {{jeton}} par sa valeur (chaîne vide si le
// jeton est inconnu) et retourne, dans l'ordre de première occurrence, la
// liste des valeurs résolues non vides, doublons conservés si deux jetons
// résolvent le même texte. Cette liste pilote la remise en gras au rendu.
func FillTemplate(tpl string, values map[string]string) (string, []string) {
	var dynamics []string
	body := tokenRe.ReplaceAllStringFunc(tpl, func(m string) string {
		key := strings.TrimSpace(m[2 : len(m)-2])
		v := values[key]
		if v != "" {
			dynamics = append(dynamics, v)
		}
		return v
	})
	return body, dynamics
}

// leaseDurationYears: durée du bail en années, différence de mois
// calendaires divisée par 12. Entier quand divisible, une décimale sinon.
func leaseDurationYears(start, end time.Time) string {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months%12 == 0 {
		return fmt.Sprintf("%d", months/12)
	}
	return fmt.Sprintf("%.1f", float64(months)/12)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func formatMonthFR(t time.Time) string {
	return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
}
