package iterm2

import "strconv"

// Field-name candidates tried in priority order when decoding bridge output.
// The automation surface has gone through several naming generations
// (snake_case in the Python API, camelCase in JXA, bare ids in older builds);
// the variance is contained entirely inside this adapter.
var (
	windowListKeys = []string{"windows", "terminal_windows", "terminalWindows"}
	tabListKeys    = []string{"tabs"}
	sessionListKeys = []string{"sessions"}

	windowIDKeys    = []string{"window_id", "windowId", "id"}
	windowIndexKeys = []string{"window_index", "windowIndex", "index"}
	tabIDKeys       = []string{"tab_id", "tabId", "id"}
	tabIndexKeys    = []string{"tab_index", "tabIndex", "index"}

	sessionIDKeys  = []string{"session_id", "sessionId", "id", "uniqueID"}
	nameKeys       = []string{"name", "auto_name", "autoName", "title"}
	workingDirKeys = []string{"working_directory", "workingDirectory", "path"}
	commandKeys    = []string{"command_line", "commandLine", "command", "job_name", "jobName"}

	activeSessionKeys = []string{"active_session_id", "activeSessionId", "current_session_id", "currentSessionId"}
)

// stringField returns the first candidate key holding a non-empty string.
// Numeric values are stringified, matching hosts that report numeric ids.
func stringField(m map[string]interface{}, keys []string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// intField returns the first candidate key holding a usable integer,
// or fallback when none does.
func intField(m map[string]interface{}, keys []string, fallback int) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return fallback
}

// listField returns the first candidate key holding a list.
func listField(m map[string]interface{}, keys []string) []interface{} {
	for _, key := range keys {
		if v, ok := m[key].([]interface{}); ok {
			return v
		}
	}
	return nil
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}
