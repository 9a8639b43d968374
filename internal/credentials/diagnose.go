package credentials

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
)

// Check is one line of the credential report. It never carries key material.
type Check struct {
	Source  string   `json:"source"`
	Present bool     `json:"present"`
	Length  int      `json:"length,omitempty"`
	Valid   bool     `json:"valid"`
	Missing []string `json:"missingFields,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type Report struct {
	Selected  string   `json:"selected,omitempty"`
	ProjectID string   `json:"projectId,omitempty"`
	Email     string   `json:"clientEmail,omitempty"`
	Checks    []Check  `json:"checks"`
	Related   []string `json:"relatedEnvVars"`
}

// Diagnose inspects every credential source without stopping at the first
// valid one.
func Diagnose(lookup Lookup, environ []string) Report {
	if lookup == nil {
		lookup = os.Getenv
	}
	var rep Report

	byName := map[string]candidate{}
	for _, c := range candidates(lookup) {
		byName[c.source] = c
	}

	names := []string{}
	if _, n := joinParts(lookup); n > 0 {
		for name := range byName {
			if strings.HasPrefix(name, "GOOGLE_CLOUD_KEY_PART") {
				names = append(names, name)
			}
		}
	} else {
		names = append(names, "GOOGLE_CLOUD_KEY_PART1..N")
	}
	names = append(names, base64Key)
	names = append(names, jsonKeys...)

	for _, name := range names {
		check := Check{Source: name}
		c, ok := byName[name]
		if ok {
			check.Present = true
			check.Length = len(c.raw)
			sa, err := c.parse()
			if err != nil {
				check.Error = err.Error()
				check.Missing = missingFrom(c)
			} else {
				check.Valid = true
				if rep.Selected == "" {
					rep.Selected = name
					rep.ProjectID = sa.ProjectID
					rep.Email = sa.ClientEmail
				}
			}
		}
		rep.Checks = append(rep.Checks, check)
	}

	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if strings.Contains(key, "GOOGLE") || strings.Contains(key, "GCP") || strings.Contains(key, "CLOUD") {
			rep.Related = append(rep.Related, key)
		}
	}
	sort.Strings(rep.Related)
	return rep
}

func missingFrom(c candidate) []string {
	raw, err := c.decode(c.raw)
	if err != nil {
		return nil
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil
	}
	return sa.missing()
}
