package unwrapgen_test

import (
	"bytes"
	"errors"
	"fmt"
	"go/build"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	unwrapgeninternal "github.com/sublee/unwrapgen/internal/unwrapgen"
	"github.com/sublee/unwrapgen/pkg/unwrapanalysis"
)

// TestAnalysis tests parsing and building errors using the Go analysis
// protocol. In this test, Unwrapgen errors will be reported as analysis errors.
// "// want `REGEXP`" comments in the fixture source files are used to check for
// expected analysis errors.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── analysis/
//	    ├── pkg1/
//	    │   └── *.go // with want comments
//	    └── pkg2/
//	        └── *.go // with want comments
func TestAnalysis(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/analysis"))
	require.NoError(t, err)

	t.Setenv("GOFLAGS", "-tags=unwrapgen")

	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}

		t.Run(ent.Name(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if t.Failed() {
					t.Logf("\n\tReproduce:\tgo run ./cmd/unwrapgen ./testdata/analysis/%s", ent.Name())
				}
			}()

			analysistest.Run(t, "", unwrapanalysis.Analyzer, "./testdata/analysis/"+ent.Name())
		})
	}
}

// TestAnalysisReport tests the diagnostics of the -report flag. They list the
// unwrappers and skipped variants at each directive.
func TestAnalysisReport(t *testing.T) {
	t.Setenv("GOFLAGS", "-tags=unwrapgen")

	require.NoError(t, unwrapanalysis.Analyzer.Flags.Set("report", "true"))
	t.Cleanup(func() {
		_ = unwrapanalysis.Analyzer.Flags.Set("report", "false")
	})

	analysistest.Run(t, "", unwrapanalysis.Analyzer, "./testdata/report/Notes")
}

// TestPrograms tests programs in the testdata directory.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── program/
//	    ├── program1/
//	    │   ├── main_pkg.txt --- If main_pkg.txt is not present, "main" will be used as the default package name.
//	    │   ├── main/
//	    │   │   └── main.go
//	    │   └── want/
//	    │       └── program_output.txt
//	    └── program2/
//	        ├── main_pkg.txt
//	        ├── foo/
//	        │   └── foo.go
//	        ├── bar/
//	        │   └── bar.go
//	        └── want/
//	            └── unwrapgen_error.txt
func TestPrograms(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/program"))
	require.NoError(t, err)

	unwrapgenGo, err := os.ReadFile("unwrapgen.go")
	require.NoError(t, err)
	unwraperrorsGo, err := os.ReadFile(filepath.FromSlash("pkg/unwraperrors/errors.go"))
	require.NoError(t, err)

	var tests []*programTest
	for _, ent := range ents {
		name := ent.Name()
		if !ent.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		test, err := newProgramTest(name, unwrapgenGo, unwraperrorsGo)
		if err != nil {
			t.Error(err)
			continue
		}

		tests = append(tests, test)
	}

	for _, test := range tests {
		t.Run(test.Name(), test.Test())
	}
}

// programTest is a test case for a program. It executes Unwrapgen for the program
// and runs the program with generated code to check the output.
type programTest struct {
	name    string
	mainPkg string
	files   map[string][]byte
	want    struct {
		ProgramOutput  string
		UnwrapgenError string
	}
}

func (test *programTest) Name() string {
	return test.name
}

func (test *programTest) PkgPath() string {
	return fmt.Sprintf("example.com/%s", test.name)
}

func (test *programTest) ProgramPath() string {
	return fmt.Sprintf("%s/%s", test.PkgPath(), test.mainPkg)
}

// newProgramTest creates a new program test case.
func newProgramTest(name string, unwrapgenGo, unwraperrorsGo []byte) (*programTest, error) {
	root := filepath.Join(filepath.FromSlash("testdata/program"), name)
	test := programTest{
		name:  name,
		files: make(map[string][]byte),
	}

	// mainPkg
	mainPkg, err := os.ReadFile(filepath.Join(root, "main_pkg.txt"))
	if errors.Is(err, os.ErrNotExist) {
		mainPkg = []byte("main")
	} else if err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}
	test.mainPkg = string(bytes.TrimSpace(mainPkg))

	// want
	programOutput, _ := os.ReadFile(filepath.Join(root, "want", "program_output.txt"))
	unwrapgenError, _ := os.ReadFile(filepath.Join(root, "want", "unwrapgen_error.txt"))
	test.want.ProgramOutput = string(bytes.TrimSpace(programOutput))
	test.want.UnwrapgenError = string(bytes.TrimSpace(unwrapgenError))

	if test.want.ProgramOutput == "" && test.want.UnwrapgenError == "" {
		return nil, fmt.Errorf("load test case %s: does not want anything", name)
	}

	// files
	if err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Bubble up I/O errors
			return err
		}

		if info, err := os.Stat(path); err == nil && info.IsDir() {
			// Skip directories
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			panic(err)
		}

		if !info.Mode().IsRegular() || filepath.Ext(path) != ".go" {
			// Skip non-Go files
			return nil
		}

		if filepath.Base(path) == "unwrapgen_gen.go" {
			// Skip generated Unwrapgen files, they might be existed for debugging
			// purposes.
			return nil
		}

		goCode, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		test.files[test.PkgPath()+"/"+filepath.ToSlash(rel)] = goCode
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load test case %s: %v", name, err)
	}

	test.files["github.com/sublee/unwrapgen/unwrapgen.go"] = unwrapgenGo
	test.files["github.com/sublee/unwrapgen/pkg/unwraperrors/errors.go"] = unwraperrorsGo
	return &test, nil
}

// materialize copies the program code and unwrapgen.go into the given GOPATH.
func (test *programTest) materialize(gopath string) error {
	// NOTE: Code snippets were stolen from Wire.
	for name, content := range test.files {
		dst := filepath.Join(gopath, "src", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
			return fmt.Errorf("mkdir %s: %w", name, err)
		}
		if err := os.WriteFile(dst, content, 0o666); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	// Write go.mod file for github.com/sublee/unwrapgen
	unwrapgenGomodPath := filepath.Join(gopath, "src", "github.com", "sublee", "unwrapgen", "go.mod")
	unwrapgenGomod := `
	module github.com/sublee/unwrapgen
	go 1.25.0`
	if err := os.WriteFile(unwrapgenGomodPath, []byte(unwrapgenGomod), 0o666); err != nil {
		return fmt.Errorf("write github.com/sublee/unwrapgen/go.mod: %w", err)
	}

	// Write go.mod file for example.com/NAME
	testGomodPath := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()), "go.mod")
	testGomod := fmt.Sprintf(`
	module %s
	go 1.25.0
	require github.com/sublee/unwrapgen v0.0.0
	replace github.com/sublee/unwrapgen => %s
	`, test.PkgPath(), filepath.Join(gopath, filepath.FromSlash("src/github.com/sublee/unwrapgen")))
	if err := os.WriteFile(testGomodPath, []byte(testGomod), 0o666); err != nil {
		return fmt.Errorf("write %s/go.mod: %w", test.PkgPath(), err)
	}

	return nil
}

// Test returns a test function for the program test. It runs Unwrapgen for the
// program and then checks its error or output messages.
func (test *programTest) Test() func(*testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		defer func() {
			if t.Failed() {
				t.Logf("\n\tReproduce:\tgo run ./cmd/unwrapgen ./testdata/program/%s/%s", test.Name(), test.mainPkg)
			}
		}()

		// Materialize in a temporary directory
		gopath := filepath.Join(os.TempDir(), "unwrapgen_test_"+test.Name())
		require.NoError(t, test.materialize(gopath), "Materialization failed")

		// Run Unwrapgen
		wd := filepath.Join(gopath, "src", filepath.FromSlash(test.PkgPath()))
		env := append(os.Environ(), "GOPATH="+gopath)
		generated, unwrapgenErr := unwrapgeninternal.Main(t.Context(), unwrapgeninternal.Config{
			Dir:     wd,
			Env:     env,
			OutFile: "unwrapgen_gen.go",
		}, []string{"pattern=./" + test.mainPkg})

		// Check for the Unwrapgen error
		if unwrapgenErr != nil {
			unwrapgenErr = errors.New(relPathInString(unwrapgenErr.Error(), wd))
			if test.want.UnwrapgenError != "" {
				want := normalizeWhitespace(test.want.UnwrapgenError)
				have := normalizeWhitespace(unwrapgenErr.Error())
				assert.Equal(t, want, have)
			} else {
				require.NoError(t, unwrapgenErr, "Unwrapgen exited with errors unexpectedly")
			}
			return
		}

		if test.want.UnwrapgenError != "" {
			require.Error(t, unwrapgenErr, "Unwrapgen should have exited with an error")
		}

		// Write generated files
		for name, content := range generated {
			err := os.WriteFile(filepath.Join(wd, name), content, 0o666)
			require.NoError(t, err, "Failed to write a generated file")
		}

		// Run the program
		goCmd := filepath.Join(build.Default.GOROOT, "bin", "go")
		cmd := exec.Command(goCmd, "run", test.ProgramPath())
		cmd.Dir = wd
		progOut, err := cmd.CombinedOutput()
		require.NoError(t, err, string(progOut))

		// Test
		if test.want.ProgramOutput != "" {
			assert.Equal(t, test.want.ProgramOutput, strings.TrimSpace(string(progOut)))
		}
	}
}

// relPathInString replaces paths in the given string to their relative paths to
// the new working directory.
func relPathInString(s, wd string) string {
	realWD, err := os.Getwd()
	if err != nil {
		return s
	}

	rel, err := filepath.Rel(realWD, wd)
	if err != nil {
		return s
	}

	s = strings.ReplaceAll(s, rel+"/", "")
	s = strings.ReplaceAll(s, rel, "")
	return s
}

// normalizeWhitespaces normalizes whitespace in the given string for consistent
// comparison regardless of whitespace style.
func normalizeWhitespace(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\t", "    ")
	return s
}
