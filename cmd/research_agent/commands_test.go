package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/report"
	"github.com/jonathan/client-research/internal/research"
	"github.com/jonathan/client-research/internal/roles"
)

func TestScrapeCommand_PrintsContext(t *testing.T) {
	site := newTestSite(t)

	out, err := runCommand(t, scrapeCmd, runScrape, map[string]string{"url": site.URL})
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Acme Inc.")
	assert.Contains(t, out, "--- About Page ("+site.URL+"/about-us) ---")
	assert.Contains(t, out, "Widget design")
	assert.Contains(t, out, "Jane Smith – Marketing Director")
	assert.NotContains(t, out, "You're analyzing")
}

func TestScrapeCommand_Prompt(t *testing.T) {
	site := newTestSite(t)

	out, err := runCommand(t, scrapeCmd, runScrape, map[string]string{
		"url":    site.URL,
		"role":   "Client Success Manager",
		"prompt": "true",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "You're analyzing a company based on its website."))
	assert.Contains(t, out, roles.Instructions(roles.ClientSuccessManager))
}

func TestScrapeCommand_UnreachableSeedDegrades(t *testing.T) {
	out, err := runCommand(t, scrapeCmd, runScrape, map[string]string{
		"url":     "http://127.0.0.1:1",
		"timeout": "2",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Error scraping http://127.0.0.1:1")
	assert.Contains(t, out, "--- About Page (none) ---")
	assert.Contains(t, out, people.NoTeamInfo)
}

func TestPeopleCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "about.html")
	require.NoError(t, os.WriteFile(path, []byte(siteAbout), 0o644))

	out, err := runCommand(t, peopleCmd, runPeople, map[string]string{"file": path})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith – Marketing Director\n", out)
}

func TestPeopleCommand_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "about.html")
	require.NoError(t, os.WriteFile(path, []byte(siteAbout), 0o644))

	out, err := runCommand(t, peopleCmd, runPeople, map[string]string{"file": path, "json": "true"})
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Jane Smith"`)
	assert.Contains(t, out, `"title": "Marketing Director"`)
}

func TestPeopleCommand_URL(t *testing.T) {
	site := newTestSite(t)

	out, err := runCommand(t, peopleCmd, runPeople, map[string]string{"url": site.URL + "/about-us"})
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Smith – Marketing Director")
}

func TestPeopleCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, peopleCmd, runPeople, map[string]string{"file": filepath.Join(t.TempDir(), "missing.html")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read HTML file")
}

func TestRolesCommand(t *testing.T) {
	out, err := runCommand(t, rolesCmd, runRoles, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "strategist")
	assert.Contains(t, lines[0], "Strategist")
	assert.Contains(t, lines[1], "Business Development")
	assert.Contains(t, lines[2], "Client Success Manager")
}

func TestRolesCommand_Instructions(t *testing.T) {
	out, err := runCommand(t, rolesCmd, runRoles, map[string]string{"instructions": "true"})
	require.NoError(t, err)
	for _, k := range roles.All() {
		assert.Contains(t, out, roles.Instructions(k))
	}
}

func TestValidateCommand_Success(t *testing.T) {
	rep := report.New("https://acme.test/", &research.Result{
		Context: &research.Context{Home: fetch.Page{URL: "https://acme.test/", Title: "Acme", StatusCode: 200}},
		Role:    roles.Strategist,
		Summary: "Briefing",
	})
	path, err := report.Save(t.TempDir(), rep, report.FormatJSON)
	require.NoError(t, err)

	out, err := runCommand(t, validateCmd, runValidate, map[string]string{"in": path})
	require.NoError(t, err)
	assert.Contains(t, out, "Validation passed")
}

func TestValidateCommand_Failure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"not-a-uuid","role":""}`), 0o644))

	out, err := runCommand(t, validateCmd, runValidate, map[string]string{"in": path})
	require.Error(t, err)
	assert.Contains(t, out, "Validation failed")
	assert.Contains(t, out, "(root)")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, validateCmd, runValidate, map[string]string{"in": filepath.Join(t.TempDir(), "none.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read report")
}
