package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const baselineJSON = `{
  "id": "kb-1",
  "display_name": "Docs",
  "indexer": {"chunk_size": 512, "chunk_overlap": 64, "input_topics": ["orders", "logs-.*"]}
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func runMask(t *testing.T, args ...string) *structpb.Struct {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"mask"}, args...))
	require.NoError(t, cmd.Execute())

	var s structpb.Struct
	require.NoError(t, protojson.Unmarshal(out.Bytes(), &s))
	return &s
}

func maskPaths(s *structpb.Struct) []string {
	var paths []string
	for _, v := range s.GetFields()["update_mask"].GetStructValue().GetFields()["paths"].GetListValue().GetValues() {
		paths = append(paths, v.GetStringValue())
	}
	return paths
}

func TestMaskCommand(t *testing.T) {
	dir := t.TempDir()
	baseline := writeFile(t, dir, "baseline.json", baselineJSON)
	edited := writeFile(t, dir, "edited.json", `{
  "id": "kb-1",
  "display_name": "Docs v2",
  "indexer": {"chunk_size": 512, "chunk_overlap": 64, "input_topics": ["orders", "payments", "logs-.*"]}
}`)

	s := runMask(t, "--baseline", baseline, "--edited", edited)

	assert.Equal(t, "kb-1", s.GetFields()["id"].GetStringValue())
	assert.ElementsMatch(t, []string{"display_name", "indexer.input_topics"}, maskPaths(s))
	assert.Equal(t, "Docs v2", s.GetFields()["knowledge_base"].GetStructValue().GetFields()["display_name"].GetStringValue())
}

func TestMaskCommand_NoChanges(t *testing.T) {
	dir := t.TempDir()
	baseline := writeFile(t, dir, "baseline.json", baselineJSON)

	s := runMask(t, "--baseline", baseline, "--edited", baseline)

	_, ok := s.GetFields()["update_mask"]
	assert.False(t, ok)
}

func TestMaskCommand_RulesFile(t *testing.T) {
	dir := t.TempDir()
	baseline := writeFile(t, dir, "baseline.json", baselineJSON)
	edited := writeFile(t, dir, "edited.json", `{"id": "kb-1", "display_name": "Renamed",
  "indexer": {"chunk_size": 512, "chunk_overlap": 64, "input_topics": ["orders", "logs-.*"]}}`)
	rules := writeFile(t, dir, "rules.yaml", `
rules:
  - name: everything
    kind: composite-widen
    source: display_name
    target: indexer
`)

	s := runMask(t, "--baseline", baseline, "--edited", edited, "--rules-file", rules, "--id", "kb-9")

	assert.Equal(t, "kb-9", s.GetFields()["id"].GetStringValue())
	assert.Equal(t, []string{"indexer"}, maskPaths(s))
}
