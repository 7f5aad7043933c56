package sway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/buger/jsonparser"
	"github.com/charmbracelet/x/ansi"
)

var ErrMalformedTree = errors.New("sway: malformed tree")

const maxSnippet = 80

// Descriptor is the part of a tree container the titlebar cares about.
// Descriptors are replaced wholesale on every refresh.
type Descriptor struct {
	ID      int64
	Name    string
	Focused bool
}

// Flattened is the outcome of walking one or more container lists.
type Flattened struct {
	Windows []Descriptor
	// Focus is the index of the focused descriptor in Windows, or -1.
	Focus int
	// Workspace names the workspace the windows were taken from.
	Workspace string
	// Malformed holds a short excerpt of every node that was not an object.
	Malformed []string
	// Conflicts counts focused candidates beyond the first.
	Conflicts int
}

// HasFocus reports whether a focused window was found.
func (f Flattened) HasFocus() bool {
	return f.Focus >= 0
}

// FocusedWorkspace walks a GET_TREE payload. Outputs and their workspaces
// are visited in order; the first workspace holding the focused window
// wins. When no workspace has one the result is empty with Focus -1.
// Malformed nodes below the root are reported in the result. A payload that
// is not well-formed JSON, a root that is not an object, or an output whose
// workspace list cannot be read is returned as an error.
func FocusedWorkspace(payload []byte) (Flattened, error) {
	if !json.Valid(payload) {
		return Flattened{Focus: -1}, fmt.Errorf("%w: payload is not valid json", ErrMalformedTree)
	}
	_, dataType, _, err := jsonparser.Get(payload)
	if err != nil {
		return Flattened{Focus: -1}, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	if dataType != jsonparser.Object {
		return Flattened{Focus: -1}, fmt.Errorf("%w: root is %s", ErrMalformedTree, dataType)
	}

	diag := Flattened{Focus: -1}
	outputs, err := childList(payload, "nodes", &diag)
	if err != nil {
		return Flattened{Focus: -1}, err
	}

	var (
		found   Flattened
		done    bool
		walkErr error
	)
	eachObject(outputs, &diag, func(output []byte) {
		if done {
			return
		}
		workspaces, err := childList(output, "nodes", &diag)
		if err != nil {
			walkErr = err
			done = true
			return
		}
		eachObject(workspaces, &diag, func(ws []byte) {
			if done {
				return
			}
			flat := FlattenWorkspace(ws)
			diag.Malformed = append(diag.Malformed, flat.Malformed...)
			diag.Conflicts += flat.Conflicts
			if flat.HasFocus() {
				found = flat
				done = true
			}
		})
	})
	if walkErr != nil {
		return Flattened{Focus: -1}, walkErr
	}

	result := Flattened{Focus: -1}
	if done {
		result.Windows = found.Windows
		result.Focus = found.Focus
		result.Workspace = found.Workspace
	}
	result.Malformed = diag.Malformed
	result.Conflicts = diag.Conflicts
	return result, nil
}

// FlattenWorkspace collects the windows of a single workspace node. Tiled
// containers come first; floating containers are appended only when the
// tiled ones hold no focused window.
func FlattenWorkspace(ws []byte) Flattened {
	out := Flattened{Focus: -1}
	out.Workspace, _ = nodeName(ws)
	if tiled := children(ws, "nodes", &out); tiled != nil {
		out.Focus = flattenList(tiled, &out)
	}
	if out.Focus < 0 {
		if floating := children(ws, "floating_nodes", &out); floating != nil {
			out.Focus = flattenList(floating, &out)
		}
	}
	return out
}

// FlattenContainers walks a JSON array of containers depth first.
func FlattenContainers(list []byte) Flattened {
	out := Flattened{Focus: -1}
	out.Focus = flattenList(list, &out)
	return out
}

// flattenList visits every container of list in order and returns the index
// of the first focused descriptor it appended, or -1. A child that is not an
// object stops the walk of the remaining siblings.
func flattenList(list []byte, out *Flattened) int {
	found := -1
	aborted := false
	_, err := jsonparser.ArrayEach(list, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if aborted || dataType == jsonparser.Null {
			return
		}
		if dataType != jsonparser.Object {
			aborted = true
			out.Malformed = append(out.Malformed, snippet(value, dataType))
			return
		}
		found = out.keepFirst(found, flattenNode(value, out))
	})
	if err != nil {
		out.Malformed = append(out.Malformed, fmt.Sprintf("unreadable container list: %v", err))
	}
	return found
}

func flattenNode(node []byte, out *Flattened) int {
	found := -1
	if name, ok := nodeName(node); ok {
		id, err := jsonparser.GetInt(node, "id")
		if err != nil || id <= 0 {
			out.Malformed = append(out.Malformed, fmt.Sprintf("id of %q: %s", name, snippet(node, jsonparser.Object)))
		} else {
			focused, _ := jsonparser.GetBoolean(node, "focused")
			if focused {
				found = len(out.Windows)
			}
			out.Windows = append(out.Windows, Descriptor{ID: id, Name: name, Focused: focused})
		}
	}
	if list := children(node, "nodes", out); list != nil {
		found = out.keepFirst(found, flattenList(list, out))
	}
	return found
}

func (f *Flattened) keepFirst(current, candidate int) int {
	if candidate < 0 {
		return current
	}
	if current < 0 {
		return candidate
	}
	f.Conflicts++
	return current
}

// nodeName returns the cleaned name attribute unless it is missing or null.
func nodeName(node []byte) (string, bool) {
	value, dataType, _, err := jsonparser.Get(node, "name")
	if err != nil || dataType == jsonparser.Null || dataType == jsonparser.NotExist {
		return "", false
	}
	if dataType == jsonparser.String {
		if s, err := jsonparser.ParseString(value); err == nil {
			return CleanName(s), true
		}
	}
	return CleanName(string(value)), true
}

// CleanName makes a window title safe to draw: invalid UTF-8 is dropped,
// terminal escape sequences are stripped and remaining control characters
// are removed.
func CleanName(name string) string {
	name = strings.ToValidUTF8(name, "")
	name = ansi.Strip(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
}

// children is childList for nested nodes: read failures are recorded as
// malformed and the walk continues with the siblings.
func children(node []byte, key string, out *Flattened) []byte {
	list, err := childList(node, key, out)
	if err != nil {
		out.Malformed = append(out.Malformed, err.Error())
		return nil
	}
	return list
}

// childList returns the array stored under key. A missing or null key
// yields nil; any other non-array value is recorded as malformed.
func childList(node []byte, key string, out *Flattened) ([]byte, error) {
	value, dataType, _, err := jsonparser.Get(node, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || dataType == jsonparser.Null {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTree, key, err)
	}
	if dataType != jsonparser.Array {
		out.Malformed = append(out.Malformed, fmt.Sprintf("%s: %s", key, snippet(value, dataType)))
		return nil, nil
	}
	return value, nil
}

// eachObject calls fn for every object element of list, recording other
// non-null elements as malformed.
func eachObject(list []byte, out *Flattened, fn func([]byte)) {
	if list == nil {
		return
	}
	_, err := jsonparser.ArrayEach(list, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		switch dataType {
		case jsonparser.Object:
			fn(value)
		case jsonparser.Null:
		default:
			out.Malformed = append(out.Malformed, snippet(value, dataType))
		}
	})
	if err != nil {
		out.Malformed = append(out.Malformed, fmt.Sprintf("unreadable node list: %v", err))
	}
}

func snippet(value []byte, dataType jsonparser.ValueType) string {
	text := string(value)
	if len(text) > maxSnippet {
		text = text[:maxSnippet] + "..."
	}
	return fmt.Sprintf("%s %q", dataType, text)
}
