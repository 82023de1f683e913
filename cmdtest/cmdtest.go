// Package cmdtest runs in-process CLI golden tests described in YAML files.
//
// Each file holds a list of cases (or a mapping with a "tests" key). A case
// names a registered command, its args, optional environment variables and
// stdin, and the expected stdout, stderr and exit code. With update enabled
// mismatching expectations are written back into the YAML file, keeping its
// layout and comments.
package cmdtest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestData is a single case of a YAML file.
type TestData struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Cmd         string            `yaml:"cmd"`
	Args        []string          `yaml:"args"`
	Env         map[string]string `yaml:"env"`
	Stdin       string            `yaml:"stdin"`
	Expect      Expect            `yaml:"expect"`
}

type Expect struct {
	Stdout   string `yaml:"stdout"`
	Stderr   string `yaml:"stderr"`
	ExitCode int    `yaml:"exitCode"`
}

// TestGroup holds the cases of one YAML file.
type TestGroup struct {
	Name  string
	Tests []TestData `yaml:"tests"`
}

type TestSuite struct {
	groups   []*TestGroup
	commands map[string]func() int
	backings map[*TestGroup]*groupBacking
	mu       sync.Mutex
}

// groupBacking keeps the parsed node tree of a file for write-back.
type groupBacking struct {
	path      string
	root      *yaml.Node
	testNodes []*yaml.Node
}

// Read loads every .yaml and .yml file under dir.
func Read(dir string) (*TestSuite, error) {
	suite := &TestSuite{
		commands: make(map[string]func() int),
		backings: make(map[*TestGroup]*groupBacking),
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		group, backing, err := readGroup(path)
		if err != nil {
			return err
		}
		suite.groups = append(suite.groups, group)
		suite.backings[group] = backing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suite, nil
}

func readGroup(path string) (*TestGroup, *groupBacking, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, nil, fmt.Errorf("%s: empty yaml", path)
	}
	doc := root.Content[0]

	testsNode, err := locateTestsNode(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	group := &TestGroup{}
	if err := testsNode.Decode(&group.Tests); err != nil {
		return nil, nil, fmt.Errorf("%s: decode tests: %w", path, err)
	}
	group.Name = filepath.Base(path)

	if len(testsNode.Content) != len(group.Tests) {
		return nil, nil, fmt.Errorf("%s: tests count mismatch between yaml node and struct", path)
	}
	return group, &groupBacking{path: path, root: &root, testNodes: testsNode.Content}, nil
}

// Register binds the cmd field of the YAML cases to run, which returns the
// process exit code.
func (s *TestSuite) Register(cmd string, run func() int) {
	s.commands[cmd] = run
}

// Run runs every case as a subtest of t.
func (s *TestSuite) Run(t *testing.T) {
	s.RunWithUpdate(t, false)
}

// RunWithUpdate runs every case; with update, mismatches are written back
// to the YAML files instead of failing.
func (s *TestSuite) RunWithUpdate(t *testing.T, update bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.groups {
		t.Run(g.Name, func(t *testing.T) {
			for i := range g.Tests {
				t.Run(caseName(&g.Tests[i], i), func(t *testing.T) {
					s.runSingleTest(t, g, i, update)
				})
			}
		})
	}
}

func caseName(test *TestData, idx int) string {
	if test.Name == "" {
		return fmt.Sprintf("Case-%d", idx)
	}
	return test.Name
}

// result is what one command run produced.
type result struct {
	stdout, stderr string
	exitCode       int
}

func (s *TestSuite) runSingleTest(t *testing.T, group *TestGroup, idx int, update bool) {
	test := &group.Tests[idx]
	run, ok := s.commands[test.Cmd]
	if !ok {
		t.Fatalf("Command '%s' not registered", test.Cmd)
	}

	for k, v := range test.Env {
		t.Setenv(k, v)
	}
	got, err := capture(t, append([]string{test.Cmd}, test.Args...), test.Stdin, run)
	if err != nil {
		t.Fatalf("run %s: %v", test.Cmd, err)
	}

	changes := s.applyExpect(t, group, idx, got, update)
	if update && len(changes) > 0 {
		backing := s.backings[group]
		if err := persist(backing); err != nil {
			t.Fatalf("persist %s: %v", backing.path, err)
		}
		t.Logf("cmdtest: updated %s (%s): %s", backing.path, caseName(test, idx), strings.Join(changes, "; "))
	}
}

// capture runs run with os.Args set to args, stdin fed from the given text
// and stdout and stderr collected separately.
func capture(t *testing.T, args []string, stdin string, run func() int) (result, error) {
	oldArgs, oldStdin, oldStdout, oldStderr := os.Args, os.Stdin, os.Stdout, os.Stderr
	defer func() {
		os.Args, os.Stdin, os.Stdout, os.Stderr = oldArgs, oldStdin, oldStdout, oldStderr
	}()

	rIn, wIn, err := os.Pipe()
	if err != nil {
		return result{}, err
	}
	rOut, wOut, err := os.Pipe()
	if err != nil {
		return result{}, err
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		return result{}, err
	}
	os.Args = args
	os.Stdin, os.Stdout, os.Stderr = rIn, wOut, wErr

	go func() {
		_, _ = io.WriteString(wIn, stdin)
		_ = wIn.Close()
	}()
	drain := func(r *os.File, dst *string, done chan<- struct{}) {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		*dst = buf.String()
		done <- struct{}{}
	}
	var res result
	done := make(chan struct{}, 2)
	go drain(rOut, &res.stdout, done)
	go drain(rErr, &res.stderr, done)

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("panic: %v", r)
				res.exitCode = -1
			}
		}()
		res.exitCode = run()
	}()

	_ = wOut.Close()
	_ = wErr.Close()
	<-done
	<-done
	_ = rIn.Close()
	_ = rOut.Close()
	_ = rErr.Close()
	return res, nil
}

func (s *TestSuite) applyExpect(t *testing.T, group *TestGroup, idx int, got result, update bool) []string {
	test := &group.Tests[idx]
	backing := s.backings[group]
	if backing == nil {
		t.Fatalf("no yaml backing for group %s", group.Name)
	}
	expectNode := ensureMapValue(backing.testNodes[idx], "expect")

	var changes []string
	if got.exitCode != test.Expect.ExitCode {
		if update {
			test.Expect.ExitCode = got.exitCode
			setIntScalar(ensureMapValue(expectNode, "exitCode"), got.exitCode)
			changes = append(changes, fmt.Sprintf("exitCode=%d", got.exitCode))
		} else {
			t.Errorf("ExitCode mismatch:\nExpected: %d\nActual:   %d", test.Expect.ExitCode, got.exitCode)
		}
	}
	if got.stdout != test.Expect.Stdout {
		if update {
			test.Expect.Stdout = got.stdout
			setStringScalar(ensureMapValue(expectNode, "stdout"), got.stdout)
			changes = append(changes, fmt.Sprintf("stdout=%q", summarizeValue(got.stdout)))
		} else {
			t.Errorf("Stdout mismatch:\nExpected:\n%s\nActual:\n%s", test.Expect.Stdout, got.stdout)
		}
	}
	if got.stderr != test.Expect.Stderr {
		if update {
			test.Expect.Stderr = got.stderr
			setStringScalar(ensureMapValue(expectNode, "stderr"), got.stderr)
			changes = append(changes, fmt.Sprintf("stderr=%q", summarizeValue(got.stderr)))
		} else {
			t.Errorf("Stderr mismatch:\nExpected:\n%s\nActual:\n%s", test.Expect.Stderr, got.stderr)
		}
	}
	return changes
}

func persist(backing *groupBacking) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(backing.root.Content[0]); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return os.WriteFile(backing.path, buf.Bytes(), 0o644)
}

func locateTestsNode(doc *yaml.Node) (*yaml.Node, error) {
	switch doc.Kind {
	case yaml.MappingNode:
		if val := findMapValue(doc, "tests"); val != nil {
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("tests must be a sequence")
			}
			return val, nil
		}
		return nil, fmt.Errorf("missing 'tests' key")
	case yaml.SequenceNode:
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported top-level yaml kind: %v", doc.Kind)
	}
}

func findMapValue(mapNode *yaml.Node, key string) *yaml.Node {
	if mapNode.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value == key {
			return mapNode.Content[i+1]
		}
	}
	return nil
}

func ensureMapValue(mapNode *yaml.Node, key string) *yaml.Node {
	if mapNode.Kind != yaml.MappingNode {
		mapNode.Kind = yaml.MappingNode
		mapNode.Content = nil
	}
	if val := findMapValue(mapNode, key); val != nil {
		return val
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	valNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ""}
	mapNode.Content = append(mapNode.Content, keyNode, valNode)
	return valNode
}

func setStringScalar(node *yaml.Node, val string) {
	node.Kind = yaml.ScalarNode
	node.Tag = "!!str"
	// A lone newline would otherwise be written as an empty literal block.
	if val == "\n" || val == "\r\n" {
		node.Style = yaml.DoubleQuotedStyle
	} else {
		node.Style = 0
	}
	node.Value = val
}

func setIntScalar(node *yaml.Node, val int) {
	node.Kind = yaml.ScalarNode
	node.Tag = "!!int"
	node.Style = 0
	node.Value = strconv.Itoa(val)
}

func summarizeValue(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}
