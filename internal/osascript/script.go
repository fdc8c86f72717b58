package osascript

import (
	"encoding/json"
	"fmt"
)

// Command is a structured request for the scripting host: an operation tag, a
// JXA source body, and a typed argument record. The body is written against a
// single `args` object; arguments are never interpolated into the source
// text, so the only escaping mechanism in the whole bridge is json.Marshal.
type Command struct {
	Op   string
	Body string
	Args any
}

// harness wraps an operation body in a guarded top-level run() handler. The
// body's return value is serialized as the program's single stdout payload;
// any thrown value is converted into the error sentinel instead of letting
// osascript die with unstructured stderr noise.
const harness = `function run() {
	var args = %s;
	try {
		var result = (function (args) {
%s
		})(args);
		return JSON.stringify(result === undefined ? null : result);
	} catch (e) {
		return JSON.stringify({
			error: true,
			message: String(e && e.message ? e.message : e),
			stack: e && e.stack ? String(e.stack) : ""
		});
	}
}
`

// Render produces the complete, self-contained JXA program for a command.
func Render(cmd Command) (string, error) {
	if cmd.Body == "" {
		return "", fmt.Errorf("render %s: empty body", cmd.Op)
	}
	argsJSON, err := json.Marshal(cmd.Args)
	if err != nil {
		return "", fmt.Errorf("render %s: marshal args: %w", cmd.Op, err)
	}
	return fmt.Sprintf(harness, argsJSON, cmd.Body), nil
}
