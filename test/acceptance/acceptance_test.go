// Package acceptance_test exercises this module's own Open/Publication API
// against in-repo synthetic fixtures through Gherkin scenarios, the same
// godog harness the teacher drove against an external epubcheck corpus
// (test/godog/epubcheck_test.go) — rehomed here to this module's own
// behavior instead, since there is no external tool to shell out to.
package acceptance_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adammathes/epubread/internal/epubtest"
	"github.com/adammathes/epubread/pkg/epub"
	"github.com/cucumber/godog"
)

// featuresDir returns the absolute path to this package's features
// directory, joined directly onto the working directory (go test runs a
// package's tests from that package's directory).
func featuresDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return filepath.Join(dir, "features")
}

func TestPublicationFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featuresDir(t)},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// fixtureByName maps the names used in publication.feature to the
// internal/epubtest builders.
func fixtureByName(name string) ([]byte, error) {
	switch name {
	case "minimal-valid":
		return epubtest.MinimalValid(), nil
	case "linear-spine":
		return epubtest.LinearSpine(), nil
	case "wrong-mimetype":
		return epubtest.WrongMimetype(), nil
	case "missing-rootfile":
		return epubtest.MissingRootfile(), nil
	case "dangling-idref":
		return epubtest.DanglingIdref(), nil
	case "ambiguous-identifier":
		return epubtest.AmbiguousIdentifier(), nil
	case "duplicate-manifest-id":
		return epubtest.DuplicateManifestID(), nil
	case "no-metadata":
		return epubtest.NoMetadata(), nil
	default:
		return nil, fmt.Errorf("unknown fixture %q", name)
	}
}

// scenarioState holds per-scenario state for step definitions.
type scenarioState struct {
	data    []byte
	pub     *epub.Publication
	openErr error
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &scenarioState{}

	ctx.After(func(goCtx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if s.pub != nil {
			s.pub.Close()
		}
		return goCtx, nil
	})

	ctx.Step(`^the fixture "([^"]*)"$`, func(name string) error {
		data, err := fixtureByName(name)
		if err != nil {
			return err
		}
		s.data = data
		return nil
	})

	ctx.Step(`^I open it$`, func() error {
		dir, err := os.MkdirTemp("", "epubread-acceptance")
		if err != nil {
			return err
		}
		path, err := epubtest.WriteTemp(dir, "book.epub", s.data)
		if err != nil {
			return err
		}
		s.pub, s.openErr = epub.Open(path)
		return nil
	})

	ctx.Step(`^the open succeeds$`, func() error {
		if s.openErr != nil {
			return fmt.Errorf("Open returned an error: %v", s.openErr)
		}
		return nil
	})

	ctx.Step(`^the open fails with kind "([^"]*)"$`, func(kind string) error {
		if s.openErr == nil {
			return fmt.Errorf("Open succeeded, want failure with kind %s", kind)
		}
		if !epub.Is(s.openErr, epub.Kind(kind)) {
			return fmt.Errorf("Open error = %v, want kind %s", s.openErr, kind)
		}
		return nil
	})

	ctx.Step(`^the title is "([^"]*)"$`, func(want string) error {
		got, ok := s.pub.Title()
		if !ok || got != want {
			return fmt.Errorf("Title() = %q, %v; want %q, true", got, ok, want)
		}
		return nil
	})

	ctx.Step(`^the identifier is "([^"]*)"$`, func(want string) error {
		got, ok := s.pub.Identifier()
		if !ok || got != want {
			return fmt.Errorf("Identifier() = %q, %v; want %q, true", got, ok, want)
		}
		return nil
	})

	ctx.Step(`^the language is "([^"]*)"$`, func(want string) error {
		got, ok := s.pub.Language()
		if !ok || got != want {
			return fmt.Errorf("Language() = %q, %v; want %q, true", got, ok, want)
		}
		return nil
	})

	ctx.Step(`^there are no diagnostics$`, func() error {
		if n := len(s.pub.Diagnostics()); n != 0 {
			return fmt.Errorf("Diagnostics() has %d entries, want 0", n)
		}
		return nil
	})

	ctx.Step(`^there is at least one diagnostic$`, func() error {
		if n := len(s.pub.Diagnostics()); n == 0 {
			return fmt.Errorf("Diagnostics() is empty, want at least one entry")
		}
		return nil
	})

	ctx.Step(`^the spine has (\d+) items?$`, func(n int) error {
		if got := s.pub.Spine().Len(); got != n {
			return fmt.Errorf("Spine().Len() = %d, want %d", got, n)
		}
		return nil
	})

	ctx.Step(`^the spine has (\d+) linear items?$`, func(n int) error {
		if got := s.pub.Spine().LinearLen(); got != n {
			return fmt.Errorf("Spine().LinearLen() = %d, want %d", got, n)
		}
		return nil
	})

	ctx.Step(`^the manifest has (\d+) items?$`, func(n int) error {
		if got := s.pub.Manifest().Len(); got != n {
			return fmt.Errorf("Manifest().Len() = %d, want %d", got, n)
		}
		return nil
	})

	ctx.Step(`^the sequential resource paths are "([^"]*)"$`, func(want string) error {
		wantPaths := strings.Split(want, ", ")
		got := s.pub.SequentialResourcePaths()
		if len(got) != len(wantPaths) {
			return fmt.Errorf("SequentialResourcePaths() = %v, want %v", got, wantPaths)
		}
		for i := range wantPaths {
			if got[i] != wantPaths[i] {
				return fmt.Errorf("SequentialResourcePaths() = %v, want %v", got, wantPaths)
			}
		}
		return nil
	})
}
