package utils

import (
	"strings"
	"testing"
)

func TestCleanHTMLContentStripsTags(t *testing.T) {
	html := `<div>Bom dia,</div><p>A impressora <b>não imprime</b>.</p>`
	got := CleanHTMLContent(html)
	if strings.Contains(got, "<") || strings.Contains(got, ">") {
		t.Fatalf("tags survived cleaning: %q", got)
	}
	if !strings.Contains(got, "A impressora não imprime.") {
		t.Fatalf("text content lost: %q", got)
	}
}

func TestCleanHTMLContentDropsImages(t *testing.T) {
	html := `Segue o erro <img src="data:image/png;base64,AAAA" alt="assinatura"> obrigado`
	got := CleanHTMLContent(html)
	if strings.Contains(got, "base64") || strings.Contains(got, "img") {
		t.Fatalf("embedded image survived cleaning: %q", got)
	}
	if !strings.Contains(got, "Segue o erro") || !strings.Contains(got, "obrigado") {
		t.Fatalf("surrounding text lost: %q", got)
	}
}

func TestCleanHTMLContentKeepsLineBreaks(t *testing.T) {
	html := "linha um<br>linha dois<br/><br />linha três"
	got := CleanHTMLContent(html)
	if !strings.Contains(got, "linha um\nlinha dois") {
		t.Fatalf("line breaks lost: %q", got)
	}
}

func TestCleanHTMLContentCollapsesBlankRuns(t *testing.T) {
	html := "<p>um</p>\n\n\n\n<p>dois</p>"
	got := CleanHTMLContent(html)
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank run survived: %q", got)
	}
}

func TestCleanHTMLContentEmpty(t *testing.T) {
	if got := CleanHTMLContent(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
