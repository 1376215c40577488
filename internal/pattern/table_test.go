package pattern

import (
	"testing"

	"github.com/veridict/veridict/internal/model"
)

func TestTable_GroupsNonEmpty(t *testing.T) {
	table := Default()

	groups := []struct {
		category model.DeceptionCategory
		tier     Tier
	}{
		{model.CategoryUserCorrection, TierStrong},
		{model.CategoryUserCorrection, TierModerate},
		{model.CategoryUserCorrection, TierWeak},
		{model.CategoryFacade, TierWeak},
		{model.CategoryFacade, TierStrong},
		{model.CategoryUnverified, TierStrong},
		{model.CategoryUnverified, TierModerate},
		{model.CategoryUnverified, TierWeak},
		{model.CategoryInsistence, TierStrong},
		{model.CategoryReassertion, TierModerate},
		{model.CategoryDistraction, TierWeak},
	}

	for _, g := range groups {
		if len(table.Group(g.category, g.tier)) == 0 {
			t.Errorf("Expected non-empty group %s/%s", g.category, g.tier)
		}
	}
}

func TestTable_StableIndices(t *testing.T) {
	table := Default()

	for i := 0; i < table.Len(); i++ {
		p, ok := table.ByIndex(i)
		if !ok {
			t.Fatalf("Expected pattern at index %d", i)
		}
		if p.Index != i {
			t.Errorf("Pattern at position %d carries index %d", i, p.Index)
		}
	}

	if _, ok := table.ByIndex(table.Len()); ok {
		t.Error("Expected no pattern past the end of the table")
	}
	if _, ok := table.ByIndex(-1); ok {
		t.Error("Expected no pattern at a negative index")
	}
}

func TestTable_CaseInsensitiveMatching(t *testing.T) {
	table := Default()

	for _, p := range table.Group(model.CategoryUserCorrection, TierStrong) {
		if p.Label != "wrong" {
			continue
		}
		for _, text := range []string{"that is wrong", "that is WRONG", "that is Wrong"} {
			if !p.Matches(text) {
				t.Errorf("Expected %q to match %q", p.Label, text)
			}
		}
	}
}

func TestTable_URLPattern(t *testing.T) {
	table := Default()

	urls := table.Group(model.CategoryUnverified, TierStrong)
	if len(urls) == 0 {
		t.Fatal("Expected URL pattern group")
	}
	p := urls[0]

	m, ok := p.Find("deployed at https://example.com/app now")
	if !ok {
		t.Fatal("Expected URL match")
	}
	if m != "https://example.com/app" {
		t.Errorf("Expected full URL token, got %q", m)
	}

	all := p.FindAll("see http://a.example and https://b.example")
	if len(all) != 2 {
		t.Errorf("Expected 2 URL matches, got %d", len(all))
	}

	if p.Matches("no links here") {
		t.Error("Expected no URL match in plain text")
	}
}

func TestTable_ReassertionWeights(t *testing.T) {
	table := Default()

	for _, p := range table.Group(model.CategoryReassertion, TierModerate) {
		if p.Weight <= 0 || p.Weight > 1 {
			t.Errorf("Connective %q carries weight %v outside (0,1]", p.Label, p.Weight)
		}
	}
}

func TestMustGroup_PanicsOnEmptyGroup(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for an empty group")
		}
	}()
	Default().MustGroup(model.CategoryDistraction, TierStrong)
}
