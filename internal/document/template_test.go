package document

import (
	"reflect"
	"testing"
	"time"
)

func TestFillTemplate(t *testing.T) {
	body, dynamics := FillTemplate("Hello {{name}}", map[string]string{"name": "Bo"})
	if body != "Hello Bo" {
		t.Errorf("body = %q, attendu %q", body, "Hello Bo")
	}
	if !reflect.DeepEqual(dynamics, []string{"Bo"}) {
		t.Errorf("dynamics = %v, attendu [Bo]", dynamics)
	}
}

func TestFillTemplateUnknownToken(t *testing.T) {
	body, dynamics := FillTemplate("{{missing}}", map[string]string{})
	if body != "" {
		t.Errorf("body = %q, attendu chaîne vide", body)
	}
	if len(dynamics) != 0 {
		t.Errorf("dynamics = %v, attendu vide", dynamics)
	}
}

// Un modèle sans jeton rend toujours le même corps, quelle que soit la
// table de valeurs.
func TestFillTemplateLiteralOnly(t *testing.T) {
	tpl := "Bail conclu entre les parties, sans réserve."
	b1, d1 := FillTemplate(tpl, nil)
	b2, d2 := FillTemplate(tpl, map[string]string{"locataire": "Durand", "loyer": "850.00"})
	if b1 != tpl || b2 != tpl {
		t.Errorf("corps modifié : %q / %q", b1, b2)
	}
	if len(d1) != 0 || len(d2) != 0 {
		t.Errorf("dynamics non vides : %v / %v", d1, d2)
	}
}

// Ordre de première occurrence, doublons conservés, valeurs vides omises.
func TestFillTemplateDynamicsOrder(t *testing.T) {
	tpl := "Du {{debut}} au {{fin}}, loyer {{loyer}}, dépôt {{depot}}"
	values := map[string]string{
		"debut": "01/01/2025",
		"fin":   "01/01/2025", // même valeur : deux entrées
		"loyer": "850.00",
		"depot": "", // vide : aucune entrée
	}
	body, dynamics := FillTemplate(tpl, values)
	if body != "Du 01/01/2025 au 01/01/2025, loyer 850.00, dépôt " {
		t.Errorf("body = %q", body)
	}
	want := []string{"01/01/2025", "01/01/2025", "850.00"}
	if !reflect.DeepEqual(dynamics, want) {
		t.Errorf("dynamics = %v, attendu %v", dynamics, want)
	}
}

func TestFillTemplateTrimsTokenSpaces(t *testing.T) {
	body, _ := FillTemplate("{{ name }}", map[string]string{"name": "Bo"})
	if body != "Bo" {
		t.Errorf("body = %q, attendu %q", body, "Bo")
	}
}

func TestLeaseDurationYears(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"2025-01-01", "2026-01-01", "1"},   // 12 mois
		{"2025-01-01", "2026-07-01", "1.5"}, // 18 mois
		{"2023-03-01", "2026-03-01", "3"},   // 36 mois
		{"2025-01-01", "2025-10-01", "0.8"}, // 9 mois
	}
	for _, tc := range cases {
		start, _ := time.Parse("2006-01-02", tc.start)
		end, _ := time.Parse("2006-01-02", tc.end)
		if got := leaseDurationYears(start, end); got != tc.want {
			t.Errorf("leaseDurationYears(%s, %s) = %q, attendu %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestFormatMonthFR(t *testing.T) {
	d := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if got := formatMonthFR(d); got != "mars 2025" {
		t.Errorf("formatMonthFR = %q, attendu %q", got, "mars 2025")
	}
}
