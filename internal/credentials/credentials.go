// Package credentials locates a Google service-account key in the
// environment.
//
// Hosting platforms cap the size of a single environment variable, so the key
// may be split into GOOGLE_CLOUD_KEY_PART1..PART10 (Base64, concatenated in
// order). Sources are tried from most to least specific: the multi-part
// Base64 key (GOOGLE_CLOUD_KEY_PART1..N), the single Base64 key
// (GOOGLE_CLOUD_KEY_BASE64), then raw JSON in GOOGLE_CLOUD_KEY_JSON,
// GOOGLE_CLOUD_CREDENTIALS, GOOGLE_APPLICATION_CREDENTIALS or
// GCP_SERVICE_ACCOUNT_KEY.
//
// A candidate is accepted only when it parses and carries every required field.
package credentials

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const maxParts = 10

var ErrNotFound = errors.New("no valid Google service account credentials found")

// Decoding errors never quote the value; it may be key material.
var (
	errNotJSON       = errors.New("value is not JSON")
	errNotJSONOrFile = errors.New("value is neither JSON nor a readable file")
	errInvalidJSON   = errors.New("value is not a valid JSON object")
	errInvalidBase64 = errors.New("value is not valid base64")
)

var requiredFields = []string{"type", "project_id", "private_key", "client_email"}

// JSON key variables in lookup order. Only GOOGLE_APPLICATION_CREDENTIALS may
// hold a file path.
var jsonKeys = []string{
	"GOOGLE_CLOUD_KEY_JSON",
	"GOOGLE_CLOUD_CREDENTIALS",
	fileKey,
	"GCP_SERVICE_ACCOUNT_KEY",
}

const fileKey = "GOOGLE_APPLICATION_CREDENTIALS"

const base64Key = "GOOGLE_CLOUD_KEY_BASE64"

// Lookup returns an environment value; os.Getenv satisfies it.
type Lookup func(key string) string

type ServiceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`

	// JSON is the raw key, ready for option.WithCredentialsJSON.
	JSON []byte `json:"-"`
	// Source names the variable(s) the key came from.
	Source string `json:"-"`
}

type candidate struct {
	source string
	raw    string
	decode func(string) ([]byte, error)
}

// Load returns the first valid service account found through lookup.
func Load(lookup Lookup) (*ServiceAccount, error) {
	if lookup == nil {
		lookup = os.Getenv
	}
	for _, c := range candidates(lookup) {
		sa, err := c.parse()
		if err != nil {
			continue
		}
		return sa, nil
	}
	return nil, ErrNotFound
}

func candidates(lookup Lookup) []candidate {
	var out []candidate

	if parts, n := joinParts(lookup); n > 0 {
		out = append(out, candidate{
			source: fmt.Sprintf("GOOGLE_CLOUD_KEY_PART1..%d", n),
			raw:    parts,
			decode: decodeBase64,
		})
	}

	if v := lookup(base64Key); v != "" {
		out = append(out, candidate{source: base64Key, raw: v, decode: decodeBase64})
	}

	for _, key := range jsonKeys {
		if v := lookup(key); v != "" {
			decode := decodeJSON
			if key == fileKey {
				decode = decodeJSONOrFile
			}
			out = append(out, candidate{source: key, raw: v, decode: decode})
		}
	}
	return out
}

// joinParts concatenates PART1.. until the first missing part.
func joinParts(lookup Lookup) (string, int) {
	var b strings.Builder
	n := 0
	for i := 1; i <= maxParts; i++ {
		v := lookup(fmt.Sprintf("GOOGLE_CLOUD_KEY_PART%d", i))
		if v == "" {
			break
		}
		b.WriteString(strings.TrimSpace(v))
		n++
	}
	return b.String(), n
}

func (c candidate) parse() (*ServiceAccount, error) {
	raw, err := c.decode(c.raw)
	if err != nil {
		return nil, err
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.source, errInvalidJSON)
	}
	if missing := sa.missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing fields %s", c.source, strings.Join(missing, ", "))
	}
	sa.JSON = raw
	sa.Source = c.source
	return &sa, nil
}

func (sa *ServiceAccount) missing() []string {
	values := map[string]string{
		"type":         sa.Type,
		"project_id":   sa.ProjectID,
		"private_key":  sa.PrivateKey,
		"client_email": sa.ClientEmail,
	}
	var out []string
	for _, field := range requiredFields {
		if values[field] == "" {
			out = append(out, field)
		}
	}
	return out
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, errInvalidBase64
	}
	return b, nil
}

func decodeJSON(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, errNotJSON
	}
	return []byte(s), nil
}

// decodeJSONOrFile also accepts a path to a key file.
func decodeJSONOrFile(s string) ([]byte, error) {
	if b, err := decodeJSON(s); err == nil {
		return b, nil
	}
	b, err := os.ReadFile(strings.TrimSpace(s))
	if err != nil {
		return nil, errNotJSONOrFile
	}
	return b, nil
}
