package model

import (
	"strings"
	"testing"

	"github.com/mj1618/a11y-conform/internal/conform"
)

func TestMarkup_VerifiesAgainstLiveMenu(t *testing.T) {
	app := launch(t)
	bar, err := app.MenuBar()
	if err != nil {
		t.Fatal(err)
	}
	snap, err := Snapshot(bar, SnapshotOptions{Expand: true})
	if err != nil {
		t.Fatal(err)
	}
	markup, err := Markup(snap)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(markup, "<Save_As/>") || !strings.HasPrefix(markup, "<Application>\n  <File>\n") {
		t.Errorf("markup:\n%s", markup)
	}

	expected, err := conform.ParseStructure(markup)
	if err != nil {
		t.Fatal(err)
	}
	fresh := launch(t)
	freshBar, err := fresh.MenuBar()
	if err != nil {
		t.Fatal(err)
	}
	sc := conform.NewContext(nil)
	if err := conform.VerifyStructure(sc, expected.FirstChild, freshBar.FirstChild()); err != nil {
		t.Errorf("generated markup does not verify: %v", err)
	}
}

func TestMarkup_Errors(t *testing.T) {
	tests := []struct {
		name string
		el   Element
	}{
		{"unnamed", Element{ID: 1, Class: "MenuItem"}},
		{"punctuation", Element{ID: 1, Name: "Cut/Copy"}},
		{"leading digit", Element{ID: 1, Name: "1st"}},
		{"nested", Element{ID: 1, Name: "File", Children: []Element{{ID: 2, Name: "Open <recent>"}}}},
	}
	for _, tt := range tests {
		if _, err := Markup(tt.el); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
