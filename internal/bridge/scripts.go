package bridge

import (
	"embed"
	"fmt"
	"strings"
)

// The JXA payloads are compiled into the binary so a single executable can be
// copied anywhere. Each payload is a self-contained IIFE that reads its
// positional arguments, talks to the application, and prints exactly one line
// of JSON. The shared prelude (argument helpers, entity formatters, lookups)
// is prepended at assembly time, mirroring how the payloads were developed.

//go:embed jxa/read/*.js jxa/write/*.js jxa/utils/*.js
var payloadFS embed.FS

const appNamePlaceholder = "__APP_NAME__"

// assembleScript returns the executable unit for one operation: the helper
// prelude followed by the named payload, with the application name bound in.
func assembleScript(category, name, appName string) (string, error) {
	payload, err := payloadFS.ReadFile(fmt.Sprintf("jxa/%s/%s.js", category, name))
	if err != nil {
		return "", &Error{
			Kind:    ScriptNotFound,
			Message: fmt.Sprintf("Script not found: %s/%s", category, name),
		}
	}

	prelude, err := payloadFS.ReadFile("jxa/utils/prelude.js")
	if err != nil {
		return "", &Error{Kind: ScriptNotFound, Message: "Script prelude missing"}
	}

	script := string(prelude) + "\n" + string(payload)
	return strings.ReplaceAll(script, appNamePlaceholder, appName), nil
}
