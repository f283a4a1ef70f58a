package airtable

import (
	"fmt"
	"sort"
	"strings"

	dErrors "pulseboard/pkg/domain-errors"
)

// tableIDs maps the known table aliases to their raw upstream identifiers.
// The alias set is fixed; adding a table means adding it here and wiring a
// section for it in the dashboard service.
var tableIDs = map[string]string{
	"clients":       "tblQX3kPzR7mW2vNd",
	"leads":         "tblJd8wYqL5nT4xCe",
	"onboarding":    "tblVm2rKsD9pF6bHa",
	"contracts":     "tblGn7tUwE3jR8yMc",
	"invoices":      "tblBp5qZxN1kV9sLf",
	"payments":      "tblRw4eDvC6hJ2mTg",
	"errors":        "tblKs9uFbM8dQ3nPz",
	"audits":        "tblYc6iOaW7gX5rVj",
	"tickets":       "tblHt1oSeK4fZ8wBq",
	"partners":      "tblNz3aGyP9cU6kDm",
	"campaigns":     "tblXf8lMjT2vB7qRs",
	"resubmissions": "tblEq5hWnY4sG1xJp",
}

// KnownTables returns the table aliases in sorted order.
func KnownTables() []string {
	aliases := make([]string, 0, len(tableIDs))
	for alias := range tableIDs {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// ResolveTableID maps an alias or raw identifier to the upstream table ID.
// Raw identifiers are passed through when they are shaped like one; anything
// else fails with the list of valid aliases.
func ResolveTableID(nameOrID string) (string, error) {
	if id, ok := tableIDs[strings.ToLower(strings.TrimSpace(nameOrID))]; ok {
		return id, nil
	}
	if looksLikeTableID(nameOrID) {
		return nameOrID, nil
	}
	return "", dErrors.New(dErrors.CodeUnknownTable,
		fmt.Sprintf("unknown table %q, valid aliases: %s", nameOrID, strings.Join(KnownTables(), ", ")))
}

// looksLikeTableID reports whether s has the shape of a raw table
// identifier: the "tbl" prefix followed by 14 alphanumerics.
func looksLikeTableID(s string) bool {
	if len(s) != 17 || !strings.HasPrefix(s, "tbl") {
		return false
	}
	for _, r := range s[3:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
