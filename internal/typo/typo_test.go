package typo

import (
	"strings"
	"testing"
)

func TestSanitize_GuillemetsAndApostrophes(t *testing.T) {
	in := `"café" "bonjour" l'eau`
	out, report := Sanitize(in, Options{NormalizeQuotes: true, NormalizeApostrophes: true})

	if strings.Contains(out, `"`) {
		t.Fatalf("straight quotes remain: %q", out)
	}
	if !strings.Contains(out, "« café »") {
		t.Fatalf("expected guillemets around café, got %q", out)
	}
	if !strings.Contains(out, "l’eau") {
		t.Fatalf("expected curly apostrophe in l'eau, got %q", out)
	}
	if report.QuotesNormalized < 1 {
		t.Fatalf("expected quotesNormalized >= 1, got %d", report.QuotesNormalized)
	}
	if report.ApostrophesNormalized < 1 {
		t.Fatalf("expected apostrophesNormalized >= 1, got %d", report.ApostrophesNormalized)
	}
}

func TestSanitize_UnbalancedQuoteWarning(t *testing.T) {
	out, report := Sanitize(`"ouvert" et "seul`, Options{NormalizeQuotes: true})
	if len(report.Warnings) == 0 {
		t.Fatal("expected an unbalanced quote warning")
	}
	if !strings.Contains(out, `"seul`) {
		t.Fatalf("unpaired quote should stay untouched, got %q", out)
	}
}

func TestSanitize_PunctuationSpacing(t *testing.T) {
	out, report := Sanitize("Attention: voici une question ? Et merveille !", Options{FixPunctuationSpacing: true})

	want := "Attention : voici une question ? Et merveille !"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
	if report.SpacesFixed != 3 {
		t.Fatalf("expected 3 spacing fixes, got %d", report.SpacesFixed)
	}
}

func TestSanitize_PunctuationSpacingSkipsTimes(t *testing.T) {
	out, report := Sanitize("Départ 14:30 du pont.", Options{FixPunctuationSpacing: true})
	if out != "Départ 14:30 du pont." {
		t.Fatalf("time separator altered: %q", out)
	}
	if report.SpacesFixed != 0 {
		t.Fatalf("expected no fixes, got %d", report.SpacesFixed)
	}
}

func TestSanitize_PunctuationClusters(t *testing.T) {
	out, _ := Sanitize("Vraiment?!", Options{FixPunctuationSpacing: true})
	if out != "Vraiment ?!" {
		t.Fatalf("cluster mishandled: %q", out)
	}
}

func TestSanitize_InvisiblesAndSoftHyphens(t *testing.T) {
	in := "ri­vière​ du‍ matin\uFEFF"
	out, report := Sanitize(in, Options{StripInvisibles: true, RemoveSoftHyphens: true})

	if out != "rivière du matin" {
		t.Fatalf("got %q", out)
	}
	if report.InvisiblesRemoved != 3 {
		t.Fatalf("expected 3 invisibles removed, got %d", report.InvisiblesRemoved)
	}
	if report.SoftHyphensRemoved != 1 {
		t.Fatalf("expected 1 soft hyphen removed, got %d", report.SoftHyphensRemoved)
	}
}

func TestSanitize_ProtectedNouns(t *testing.T) {
	opts := AllRules()
	opts.ProtectedNouns = []string{"K'ta", "Sarthe"}

	in := `Le gué de K'ta traverse la Sarthe: l'eau y est claire.`
	out, report := Sanitize(in, opts)

	if !strings.Contains(out, "K'ta") {
		t.Fatalf("protected noun altered: %q", out)
	}
	if !strings.Contains(out, "l’eau") {
		t.Fatalf("unprotected apostrophe not normalized: %q", out)
	}
	// Only K'ta would have been altered; Sarthe needs no defense.
	if report.NounsProtected != 1 {
		t.Fatalf("expected 1 prevented alteration, got %d", report.NounsProtected)
	}
}

func TestSanitize_ProtectedNounsLongestMatchFirst(t *testing.T) {
	opts := Options{NormalizeApostrophes: true, ProtectedNouns: []string{"Loir", "Loir'ket"}}

	out, _ := Sanitize("Au bord du Loir'ket.", opts)
	if !strings.Contains(out, "Loir'ket") {
		t.Fatalf("longest noun should win, got %q", out)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	opts := AllRules()
	opts.ProtectedNouns = []string{"Huisne", "Sarthe", "K'ta"}

	inputs := []string{
		`Il dit: "la Sarthe est basse" ; l'Huisne aussi!`,
		"Du texte­coupé avec​des invisibles : et «mal» espacé?",
		`"a" "b" "c" l'un l'autre : fin !`,
		`Le gué de K'ta: l'eau y est claire.`,
		"Rien que K'ta.",
		"",
	}

	for _, in := range inputs {
		once, _ := Sanitize(in, opts)
		twice, report := Sanitize(once, opts)

		if twice != once {
			t.Fatalf("second pass changed text:\n first: %q\nsecond: %q", once, twice)
		}
		if report.Corrections() != 0 {
			t.Fatalf("second pass reported corrections: %+v (input %q)", report, in)
		}
		if report.NounsProtected != 0 {
			t.Fatalf("second pass reported protected nouns: %+v", report)
		}
	}
}

func TestReport_Add(t *testing.T) {
	a := Report{SpacesFixed: 1, QuotesNormalized: 2, Warnings: []string{"w1"}}
	b := Report{SpacesFixed: 3, ApostrophesNormalized: 4, Warnings: []string{"w2"}}

	a.Add(b)
	if a.SpacesFixed != 4 || a.QuotesNormalized != 2 || a.ApostrophesNormalized != 4 {
		t.Fatalf("bad merge: %+v", a)
	}
	if len(a.Warnings) != 2 {
		t.Fatalf("warnings not merged: %+v", a.Warnings)
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(Report{}); got != "aucune correction" {
		t.Fatalf("empty report: %q", got)
	}
	got := Describe(Report{QuotesNormalized: 2, SpacesFixed: 1})
	if !strings.Contains(got, "2 guillemets") || !strings.Contains(got, "1 espaces") {
		t.Fatalf("unexpected summary: %q", got)
	}
}
