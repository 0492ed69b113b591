// Package gedcom reads the subset of GEDCOM that drop-line charts need.
//
// Individuals (INDI) contribute NAME, SEX, BIRT.DATE and the _XY stored
// coordinate. Families (FAM) contribute HUSB, WIFE and CHIL pointers.
// Everything else is skipped. Pointers to records that do not exist are
// dropped once the whole file has been read.
package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dropline/pkg/pedigree"
)

// ErrMalformedLine is returned when a line does not start with a level
// number followed by a tag.
var ErrMalformedLine = errors.New("malformed GEDCOM line")

const maxLine = 1 << 20

type line struct {
	level int
	xref  string
	tag   string
	value string
}

func parseLine(s string) (line, bool) {
	fields := strings.SplitN(strings.TrimSpace(s), " ", 3)
	if len(fields) < 2 {
		return line{}, false
	}
	lv, err := strconv.Atoi(fields[0])
	if err != nil || lv < 0 {
		return line{}, false
	}
	l := line{level: lv}
	rest := fields[1:]
	if strings.HasPrefix(rest[0], "@") {
		l.xref = strings.Trim(rest[0], "@")
		rest = rest[1:]
		if len(rest) == 0 {
			return line{}, false
		}
		if sp := strings.SplitN(rest[0], " ", 2); len(sp) == 2 {
			rest = sp
		}
	}
	l.tag = strings.ToUpper(rest[0])
	if len(rest) > 1 {
		l.value = strings.TrimSpace(rest[1])
	}
	return l, true
}

func pointer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > 2 && strings.HasPrefix(v, "@") && strings.HasSuffix(v, "@") {
		return v[1 : len(v)-1]
	}
	return ""
}

// Read parses a GEDCOM stream into a population, keeping record order. A nil
// logger discards the warnings emitted for values that are skipped.
func Read(r io.Reader, logger *log.Logger) (*pedigree.Population, error) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	pop := &pedigree.Population{}
	var (
		indi   *pedigree.Individual
		fam    *pedigree.Family
		parent string // level-1 tag the current level-2 line belongs to
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	n := 0
	for sc.Scan() {
		n++
		text := sc.Text()
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		l, ok := parseLine(text)
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q", n, ErrMalformedLine, text)
		}

		switch l.level {
		case 0:
			indi, fam, parent = nil, nil, ""
			switch l.tag {
			case "INDI":
				id := l.xref
				if id == "" {
					id = uuid.NewString()
				}
				indi = &pedigree.Individual{ID: id}
				pop.Individuals = append(pop.Individuals, indi)
			case "FAM":
				fam = &pedigree.Family{ID: l.xref}
				pop.Families = append(pop.Families, fam)
			}
		case 1:
			parent = l.tag
			switch {
			case indi != nil:
				readIndividual(indi, l, n, logger)
			case fam != nil:
				readFamily(fam, l)
			}
		case 2:
			if indi != nil && parent == "BIRT" && l.tag == "DATE" && indi.Birth == 0 {
				indi.Birth = BirthKey(l.value)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read GEDCOM: %w", err)
	}

	dropDangling(pop)
	return pop, nil
}

func readIndividual(indi *pedigree.Individual, l line, n int, logger *log.Logger) {
	switch l.tag {
	case "NAME":
		if indi.Name == "" {
			indi.Name = l.value
		}
	case "SEX":
		indi.Sex = pedigree.ParseSex(l.value)
	case "_XY":
		p, err := pedigree.ParseXY(l.value)
		if err != nil {
			logger.Warn("ignoring stored coordinate", "line", n, "individual", indi.ID, "err", err)
			return
		}
		indi.Stored = p
	}
}

func readFamily(fam *pedigree.Family, l line) {
	switch l.tag {
	case "HUSB":
		fam.Husband = pointer(l.value)
	case "WIFE":
		fam.Wife = pointer(l.value)
	case "CHIL":
		if id := pointer(l.value); id != "" {
			fam.Children = append(fam.Children, id)
		}
	}
}

func dropDangling(pop *pedigree.Population) {
	known := pop.Index()
	ok := func(id string) bool {
		_, found := known[id]
		return found
	}
	for _, f := range pop.Families {
		if !ok(f.Husband) {
			f.Husband = ""
		}
		if !ok(f.Wife) {
			f.Wife = ""
		}
		kids := f.Children[:0]
		for _, c := range f.Children {
			if ok(c) {
				kids = append(kids, c)
			}
		}
		f.Children = kids
	}
}
