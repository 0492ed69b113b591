package gedcom

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/dropline/pkg/pedigree"
)

const sample = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME John /Doe/
1 SEX M
1 BIRT
2 DATE 12 MAR 1770
2 PLAC Boston
0 @I2@ INDI
1 NAME Jane /Roe/
1 SEX F
1 _XY 10.50 20
0 @I3@ INDI
1 NAME Jim /Doe/
1 SEX M
1 DEAT
2 DATE 1850
1 BIRT
2 DATE ABT 1801
0 @I4@ INDI
1 NAME Odd /Coord/
1 _XY nowhere
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 CHIL @I99@
0 @F2@ FAM
1 HUSB @I77@
1 CHIL @I4@
0 TRLR
`

func TestRead(t *testing.T) {
	pop, err := Read(strings.NewReader(sample), nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(pop.Individuals) != 4 || len(pop.Families) != 2 {
		t.Fatalf("got %d individuals and %d families", len(pop.Individuals), len(pop.Families))
	}

	john := pop.Individuals[0]
	if john.ID != "I1" || john.Name != "John /Doe/" || john.Sex != pedigree.SexMale {
		t.Errorf("I1 = %+v", john)
	}
	if john.Birth != 17700312 {
		t.Errorf("I1 birth = %d, want 17700312", john.Birth)
	}

	jane := pop.Individuals[1]
	if jane.Stored == nil || *jane.Stored != (pedigree.Point{X: 10.5, Y: 20}) {
		t.Errorf("I2 stored = %v", jane.Stored)
	}
	if jim := pop.Individuals[2]; jim.Birth != 18010000 {
		t.Errorf("I3 birth = %d, want 18010000 (death date must not count)", jim.Birth)
	}
	if odd := pop.Individuals[3]; odd.Stored != nil {
		t.Errorf("I4 stored = %v, want nil for invalid _XY", odd.Stored)
	}

	f1 := pop.Families[0]
	if f1.Husband != "I1" || f1.Wife != "I2" || len(f1.Children) != 1 || f1.Children[0] != "I3" {
		t.Errorf("F1 = %+v", f1)
	}
	f2 := pop.Families[1]
	if f2.Husband != "" || len(f2.Children) != 1 {
		t.Errorf("F2 = %+v, want dangling husband dropped", f2)
	}
	if pop.NeedsLayout() {
		t.Error("NeedsLayout() = true although I2 has a stored coordinate")
	}
}

func TestReadMalformed(t *testing.T) {
	_, err := Read(strings.NewReader("0 HEAD\nNAME oops\n"), nil)
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("Read() error = %v, want ErrMalformedLine", err)
	}
}

func TestReadMissingXref(t *testing.T) {
	pop, err := Read(strings.NewReader("\ufeff0 HEAD\n\n0 INDI\n1 NAME Anon\n"), nil)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(pop.Individuals) != 1 || pop.Individuals[0].ID == "" {
		t.Errorf("individuals = %+v, want one with a generated ID", pop.Individuals)
	}
}

func TestBirthKey(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12 MAR 1770", 17700312},
		{"MAR 1770", 17700300},
		{"1770", 17700000},
		{"ABT 1770", 17700000},
		{"BET 1770 AND 1780", 17700000},
		{"5 feb 1750/51", 17500205},
		{"", 0},
		{"UNKNOWN", 0},
	}
	for _, tt := range tests {
		if got := BirthKey(tt.in); got != tt.want {
			t.Errorf("BirthKey(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
