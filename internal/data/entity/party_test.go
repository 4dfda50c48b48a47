package entity

import (
	"errors"
	"testing"
)

func TestAgeRatingAdmits(t *testing.T) {
	tests := []struct {
		name   string
		rating AgeRating
		party  PartyComposition
		ok     bool
	}{
		{"all admits anyone", RatingAll, PartyComposition{Adults: 1, Teens: 2, Children: 3}, true},
		{"all admits children only", RatingAll, PartyComposition{Children: 2}, true},
		{"15 admits teens", Rating15Plus, PartyComposition{Teens: 2}, true},
		{"15 admits adults and teens", Rating15Plus, PartyComposition{Adults: 1, Teens: 1}, true},
		{"15 rejects children", Rating15Plus, PartyComposition{Children: 1}, false},
		{"15 rejects mixed with child", Rating15Plus, PartyComposition{Adults: 2, Children: 1}, false},
		{"15 rejects empty party", Rating15Plus, PartyComposition{}, false},
		{"19 admits adults", Rating19Plus, PartyComposition{Adults: 1}, true},
		{"19 rejects teen in party", Rating19Plus, PartyComposition{Adults: 1, Teens: 1}, false},
		{"19 rejects child in party", Rating19Plus, PartyComposition{Adults: 1, Children: 1}, false},
		{"19 rejects empty party", Rating19Plus, PartyComposition{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rating.Admits(tt.party)
			if tt.ok && err != nil {
				t.Fatalf("expected admit, got %v", err)
			}
			if !tt.ok {
				var violation *AgeViolationError
				if !errors.As(err, &violation) {
					t.Fatalf("expected AgeViolationError, got %v", err)
				}
				if violation.Rating != tt.rating {
					t.Errorf("violation names rating %q, want %q", violation.Rating, tt.rating)
				}
			}
		})
	}
}

func TestParseAgeRating(t *testing.T) {
	for token, want := range map[string]AgeRating{
		"ALL": RatingAll,
		"all": RatingAll,
		"15":  Rating15Plus,
		"19":  Rating19Plus,
	} {
		got, err := ParseAgeRating(token)
		if err != nil || got != want {
			t.Errorf("ParseAgeRating(%q) = %q, %v; want %q", token, got, err, want)
		}
	}

	if _, err := ParseAgeRating("12"); err == nil {
		t.Error("unknown token must fail")
	}
}

func TestPriceTableTotal(t *testing.T) {
	table := PriceTable{Adult: 18000, Teen: 15000, Child: 9000}

	tests := []struct {
		party PartyComposition
		want  int64
	}{
		{PartyComposition{Adults: 2, Teens: 1}, 51000},
		{PartyComposition{Adults: 1}, 18000},
		{PartyComposition{Children: 3}, 27000},
		{PartyComposition{}, 0},
	}

	for _, tt := range tests {
		if got := table.Total(tt.party); got != tt.want {
			t.Errorf("Total(%+v) = %d, want %d", tt.party, got, tt.want)
		}
	}
}

func TestPartySize(t *testing.T) {
	p := PartyComposition{Adults: 2, Teens: 1, Children: 1}
	if p.Size() != 4 {
		t.Errorf("Size() = %d, want 4", p.Size())
	}
}
