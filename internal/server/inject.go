package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pixfolio/pixfolio/internal/services/identity"
)

// Bootstrap marker pair. The substring between the two markers is a
// self-contained JSON value (the projected identity, or null). Both markers
// appear exactly once per document; the client-side bootstrap parser and the
// tests extract by these exact strings, so they are part of the wire contract.
const (
	UserInjectStart = "ServerInject = {user:"
	UserInjectEnd   = ", ConfigInject"
)

// ClientConfig is the public configuration blob injected next to the user.
// Only deployment facts a browser may see belong here.
type ClientConfig struct {
	SharingEnabled          bool `json:"sharingEnabled"`
	SharingPasswordRequired bool `json:"sharingPasswordRequired"`
	AuthenticationRequired  bool `json:"authenticationRequired"`
}

const bootstrapDocument = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>pixfolio</title>
</head>
<body>
  <app-root></app-root>
  <script>
    ServerInject = {user: %s, ConfigInject: %s};
  </script>
</body>
</html>
`

// RenderBootstrap writes the initial page document with the projected
// identity (or the literal null) and the client configuration injected
// between the documented markers.
//
// encoding/json escapes <, > and & inside strings, so the injected values
// cannot terminate the surrounding script block.
func RenderBootstrap(w io.Writer, user *identity.ProjectedIdentity, cfg ClientConfig) error {
	userJSON := []byte("null")
	if user != nil {
		var err error
		userJSON, err = json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal projected identity: %w", err)
		}
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal client config: %w", err)
	}

	if _, err := fmt.Fprintf(w, bootstrapDocument, userJSON, cfgJSON); err != nil {
		return fmt.Errorf("write bootstrap document: %w", err)
	}
	return nil
}

// ExtractInjectedUser is the decode half of the bootstrap codec: it returns
// the raw JSON value enclosed by the marker pair. It fails when either marker
// is missing or appears more than once.
func ExtractInjectedUser(doc string) (json.RawMessage, error) {
	if strings.Count(doc, UserInjectStart) != 1 {
		return nil, fmt.Errorf("bootstrap document must contain the start marker exactly once")
	}
	if strings.Count(doc, UserInjectEnd) != 1 {
		return nil, fmt.Errorf("bootstrap document must contain the end marker exactly once")
	}

	start := strings.Index(doc, UserInjectStart) + len(UserInjectStart)
	end := strings.Index(doc, UserInjectEnd)
	if end < start {
		return nil, fmt.Errorf("bootstrap markers are out of order")
	}

	return json.RawMessage(strings.TrimSpace(doc[start:end])), nil
}
