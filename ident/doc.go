// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates identifiers for stored records and share links.

# Record IDs

All table primary keys are random hex strings:

	id, err := ident.GenerateID(16)

16 bytes (32 hex chars) for voters and candidates, 12 for smaller
reference tables.

# Link Tokens

Assistant join links embed a UUID token rather than the assistant's
row ID, so links can be revoked later without renumbering rows:

	token := ident.GenerateLinkToken()
	link := cfg.BaseURL + "/?aid=" + token
*/
package ident
