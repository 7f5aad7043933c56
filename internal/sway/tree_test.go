package sway

import (
	"errors"
	"strings"
	"testing"
)

const sampleTree = `{
  "id": 1, "name": "root", "type": "root",
  "nodes": [
    {"id": 2, "name": "__i3", "type": "output", "nodes": [
      {"id": 3, "name": "__i3_scratch", "type": "workspace", "nodes": [], "floating_nodes": []}
    ]},
    {"id": 10, "name": "eDP-1", "type": "output", "nodes": [
      {"id": 11, "name": "1", "type": "workspace", "nodes": [
        {"id": 20, "name": "editor", "focused": false, "nodes": []}
      ], "floating_nodes": []},
      {"id": 12, "name": "2", "type": "workspace", "nodes": [
        {"id": 30, "name": null, "type": "con", "nodes": [
          {"id": 31, "name": "terminal", "focused": false, "nodes": []},
          {"id": 32, "name": "browser", "focused": true, "nodes": []}
        ]},
        {"id": 33, "name": "music", "focused": false, "nodes": []}
      ], "floating_nodes": [
        {"id": 40, "name": "calculator", "focused": false, "nodes": []}
      ]}
    ]}
  ]
}`

func names(windows []Descriptor) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.Name
	}
	return strings.Join(parts, ",")
}

func TestFocusedWorkspacePicksWorkspaceWithFocus(t *testing.T) {
	flat, err := FocusedWorkspace([]byte(sampleTree))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(flat.Windows); got != "terminal,browser,music" {
		t.Fatalf("expected tiled windows of workspace 2, got %q", got)
	}
	if flat.Focus != 1 {
		t.Fatalf("expected focus index 1, got %d", flat.Focus)
	}
	if !flat.Windows[flat.Focus].Focused || flat.Windows[flat.Focus].ID != 32 {
		t.Fatalf("expected focused descriptor 32, got %#v", flat.Windows[flat.Focus])
	}
	if flat.Workspace != "2" {
		t.Fatalf("expected workspace 2, got %q", flat.Workspace)
	}
	if len(flat.Malformed) != 0 || flat.Conflicts != 0 {
		t.Fatalf("expected clean walk, got %#v", flat)
	}
}

func TestFocusedWorkspaceUniqueFocus(t *testing.T) {
	flat, err := FocusedWorkspace([]byte(sampleTree))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, w := range flat.Windows {
		if w.Focused {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one focused descriptor, got %d", count)
	}
}

func TestFocusedWorkspaceWithoutFocusIsEmpty(t *testing.T) {
	payload := `{"nodes": [{"nodes": [
	  {"name": "1", "nodes": [{"id": 5, "name": "a", "focused": false}], "floating_nodes": [{"id": 6, "name": "b"}]},
	  {"name": "2", "nodes": [{"id": 7, "name": "c"}]}
	]}]}`
	flat, err := FocusedWorkspace([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flat.Windows) != 0 {
		t.Fatalf("expected no windows, got %q", names(flat.Windows))
	}
	if flat.HasFocus() || flat.Focus != -1 {
		t.Fatalf("expected focus -1, got %d", flat.Focus)
	}
}

func TestFocusedWorkspaceSecondOutput(t *testing.T) {
	payload := `{"nodes": [
	  {"name": "DP-1", "nodes": [{"name": "1", "nodes": [{"id": 1, "name": "idle"}]}]},
	  {"name": "DP-2", "nodes": [{"name": "5", "nodes": [{"id": 2, "name": "left"}, {"id": 3, "name": "right", "focused": true}]}]}
	]}`
	flat, err := FocusedWorkspace([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(flat.Windows); got != "left,right" || flat.Focus != 1 {
		t.Fatalf("expected left,right focus 1, got %q focus %d", got, flat.Focus)
	}
}

func TestFlattenWorkspaceFallsBackToFloating(t *testing.T) {
	ws := `{"name": "3",
	  "nodes": [{"id": 1, "name": "tiled-a"}, {"id": 2, "name": "tiled-b"}],
	  "floating_nodes": [{"id": 3, "name": "float", "focused": true}]}`
	flat := FlattenWorkspace([]byte(ws))
	if got := names(flat.Windows); got != "tiled-a,tiled-b,float" {
		t.Fatalf("expected tiled then floating, got %q", got)
	}
	if flat.Focus != 2 {
		t.Fatalf("expected focus 2, got %d", flat.Focus)
	}
}

func TestFlattenWorkspaceSkipsFloatingWhenTiledFocused(t *testing.T) {
	ws := `{"name": "3",
	  "nodes": [{"id": 1, "name": "tiled", "focused": true}],
	  "floating_nodes": [{"id": 3, "name": "float"}]}`
	flat := FlattenWorkspace([]byte(ws))
	if got := names(flat.Windows); got != "tiled" {
		t.Fatalf("expected only tiled windows, got %q", got)
	}
}

func TestFlattenContainersPreOrder(t *testing.T) {
	list := `[
	  {"id": 1, "name": "a", "nodes": [
	    {"id": 2, "name": "b", "nodes": [{"id": 3, "name": "c"}]},
	    {"id": 4, "name": null, "nodes": [{"id": 5, "name": "d", "focused": true}]}
	  ]},
	  {"id": 6, "name": "e"}
	]`
	flat := FlattenContainers([]byte(list))
	if got := names(flat.Windows); got != "a,b,c,d,e" {
		t.Fatalf("expected pre-order a,b,c,d,e, got %q", got)
	}
	if flat.Focus != 3 || flat.Windows[3].ID != 5 {
		t.Fatalf("expected focus on d at index 3, got %d", flat.Focus)
	}
}

func TestFlattenContainersMissingNameIsSkipped(t *testing.T) {
	flat := FlattenContainers([]byte(`[{"id": 1, "nodes": [{"id": 2, "name": "only"}]}]`))
	if got := names(flat.Windows); got != "only" {
		t.Fatalf("expected only named container, got %q", got)
	}
}

func TestFlattenContainersMalformedChildAbortsSiblings(t *testing.T) {
	list := `[
	  {"id": 1, "name": "first"},
	  "not-a-container",
	  {"id": 2, "name": "never", "focused": true}
	]`
	flat := FlattenContainers([]byte(list))
	if got := names(flat.Windows); got != "first" {
		t.Fatalf("expected walk to stop after malformed child, got %q", got)
	}
	if flat.HasFocus() {
		t.Fatalf("expected no focus from skipped sibling")
	}
	if len(flat.Malformed) != 1 || !strings.Contains(flat.Malformed[0], "not-a-container") {
		t.Fatalf("expected malformed diagnostic, got %#v", flat.Malformed)
	}
}

func TestFocusedWorkspaceMalformedNestedNodeIsNotFatal(t *testing.T) {
	payload := `{"nodes": [{"nodes": [{"name": "1", "nodes": [
	  {"id": 1, "name": "ok", "focused": true, "nodes": [42]},
	  {"id": 2, "name": "sibling"}
	]}]}]}`
	flat, err := FocusedWorkspace([]byte(payload))
	if err != nil {
		t.Fatalf("expected best-effort result, got error %v", err)
	}
	if got := names(flat.Windows); got != "ok,sibling" {
		t.Fatalf("expected outer siblings kept, got %q", got)
	}
	if flat.Focus != 0 {
		t.Fatalf("expected focus 0, got %d", flat.Focus)
	}
	if len(flat.Malformed) != 1 {
		t.Fatalf("expected one malformed diagnostic, got %#v", flat.Malformed)
	}
}

func TestFlattenContainersKeepsEarliestFocus(t *testing.T) {
	list := `[
	  {"id": 1, "name": "a", "focused": true, "nodes": [{"id": 2, "name": "b", "focused": true}]},
	  {"id": 3, "name": "c", "focused": true}
	]`
	flat := FlattenContainers([]byte(list))
	if flat.Focus != 0 {
		t.Fatalf("expected earliest focus 0, got %d", flat.Focus)
	}
	if flat.Conflicts != 2 {
		t.Fatalf("expected two conflicts, got %d", flat.Conflicts)
	}
}

func TestFocusedWorkspaceRejectsUnreadableRoot(t *testing.T) {
	for _, payload := range []string{``, `[1,2]`, `"tree"`} {
		if _, err := FocusedWorkspace([]byte(payload)); !errors.Is(err, ErrMalformedTree) {
			t.Fatalf("payload %q: expected ErrMalformedTree, got %v", payload, err)
		}
	}
}

func TestFocusedWorkspaceIsDeterministic(t *testing.T) {
	first, err := FocusedWorkspace([]byte(sampleTree))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FocusedWorkspace([]byte(sampleTree))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names(first.Windows) != names(second.Windows) || first.Focus != second.Focus {
		t.Fatalf("expected identical results, got %#v and %#v", first, second)
	}
}

func TestNodeNameUnescapes(t *testing.T) {
	name, ok := nodeName([]byte(`{"name": "café \"x\""}`))
	if !ok || name != `café "x"` {
		t.Fatalf("expected unescaped name, got %q (ok=%v)", name, ok)
	}
	if _, ok := nodeName([]byte(`{"name": null}`)); ok {
		t.Fatalf("expected null name to be skipped")
	}
}

func TestFocusedWorkspaceRejectsTruncatedJSON(t *testing.T) {
	payload := `{"nodes":[{"nodes":[{"name":"9","nodes":[{"id":99,"name":"ghost","focused":true}]}]}],"rect":{"x":tru,}}`
	flat, err := FocusedWorkspace([]byte(payload))
	if !errors.Is(err, ErrMalformedTree) {
		t.Fatalf("expected ErrMalformedTree, got %v", err)
	}
	if len(flat.Windows) != 0 || flat.HasFocus() {
		t.Fatalf("expected empty result on error, got %#v", flat)
	}
}

func TestFlattenContainersRejectsBadID(t *testing.T) {
	list := `[
	  {"id": "seven", "name": "stringly", "focused": true},
	  {"name": "missing"},
	  {"id": 8, "name": "kept"}
	]`
	flat := FlattenContainers([]byte(list))
	if got := names(flat.Windows); got != "kept" {
		t.Fatalf("expected only the window with a valid id, got %q", got)
	}
	if flat.HasFocus() {
		t.Fatalf("expected focus from rejected window to be dropped, got %d", flat.Focus)
	}
	if len(flat.Malformed) != 2 {
		t.Fatalf("expected two malformed diagnostics, got %#v", flat.Malformed)
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Mozilla Firefox", want: "Mozilla Firefox"},
		{name: "wide", in: "日本語のウィンドウ", want: "日本語のウィンドウ"},
		{name: "sgr", in: "a\x1b[31mred\x1b[0m", want: "ared"},
		{name: "osc52", in: "x\x1b]52;c;aGVsbG8=\ay", want: "xy"},
		{name: "invalid utf8", in: "\xff\xfeabc", want: "abc"},
		{name: "controls", in: "tab\there\nline", want: "tabhereline"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanName(tc.in); got != tc.want {
				t.Fatalf("CleanName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNodeNameStripsEscapes(t *testing.T) {
	name, ok := nodeName([]byte(`{"name": "page\u001b]52;c;aGk=\u0007title"}`))
	if !ok || name != "pagetitle" {
		t.Fatalf("expected escape sequence removed, got %q (ok=%v)", name, ok)
	}
}
