package observability

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/report"
	"github.com/jonathan/client-research/internal/research"
)

func TestPrintGathered(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rc := &research.Context{
		Home:     fetch.Page{URL: "https://acme.test/", Title: "Acme Inc.", BodyText: "We build widgets.", StatusCode: 200},
		About:    fetch.ErrorPage("https://acme.test/about", errors.New("timeout")),
		Services: fetch.Page{},
	}

	p.PrintGathered(rc)
	output := buf.String()

	assert.Contains(t, output, "GATHERED PAGES")
	assert.Contains(t, output, "Home: https://acme.test/")
	assert.Contains(t, output, "Acme Inc.")
	assert.Contains(t, output, "We build widgets.")
	assert.Contains(t, output, "✗ fetch failed")
	assert.Contains(t, output, "Services: not found")
}

func TestPrintGathered_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintGathered(nil)
	assert.Empty(t, buf.String())
}

func TestPrintPeople(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	set := people.NewSet()
	for i := 0; i < 7; i++ {
		set.Add(people.Record{Name: fmt.Sprintf("Person %c", 'A'+i), Title: "CEO"})
	}

	p.PrintPeople(set)
	output := buf.String()

	assert.Contains(t, output, "TEAM INFO")
	assert.Contains(t, output, "Found 7 people")
	assert.Contains(t, output, "Person A – CEO")
	assert.NotContains(t, output, "Person G – CEO")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintPeople_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPeople(people.NewSet())
	assert.Contains(t, buf.String(), "No team info found.")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &report.Report{ID: uuid.New(), URL: "https://acme.test/", Role: "Strategist", Model: "o3"}
	p.PrintReport(r, "out/report.md")
	output := buf.String()

	assert.Contains(t, output, "RESEARCH REPORT")
	assert.Contains(t, output, "Strategist")
	assert.Contains(t, output, "o3")
	assert.Contains(t, output, "out/report.md")
	assert.Contains(t, output, r.ID.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPeople(people.NewSet(people.Record{
		Name:  "Maximilian Alexander Montgomery",
		Title: "Senior Vice President Of Global Strategic Partnerships – Europe",
	}))
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, line)
	}
}
